package rg10

import (
	"errors"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	for v := 0; v <= MaxSample; v++ {
		lsb, msb, err := Pack(v)
		if err != nil {
			t.Fatalf("Pack(%d) error: %v", v, err)
		}
		if msb&^0x03 != 0 {
			t.Fatalf("Pack(%d) msb = 0x%02x, reserved bits set", v, msb)
		}
		if got := Unpack(lsb, msb); int(got) != v {
			t.Fatalf("Unpack(Pack(%d)) = %d", v, got)
		}
	}
}

func TestPackRejectsOutOfRange(t *testing.T) {
	for _, v := range []int{-1, 1024, -1000, 65536} {
		_, _, err := Pack(v)
		var re *RangeError
		if !errors.As(err, &re) {
			t.Errorf("Pack(%d) error = %v, want RangeError", v, err)
			continue
		}
		if re.Value != v {
			t.Errorf("Pack(%d) RangeError.Value = %d", v, re.Value)
		}
	}
}

func TestPackKnownValues(t *testing.T) {
	tests := []struct {
		v        int
		lsb, msb byte
	}{
		{0, 0x00, 0x00},
		{1, 0x01, 0x00},
		{255, 0xFF, 0x00},
		{256, 0x00, 0x01},
		{512, 0x00, 0x02},
		{1023, 0xFF, 0x03},
	}
	for _, tt := range tests {
		lsb, msb, err := Pack(tt.v)
		if err != nil {
			t.Fatalf("Pack(%d) error: %v", tt.v, err)
		}
		if lsb != tt.lsb || msb != tt.msb {
			t.Errorf("Pack(%d) = (0x%02x, 0x%02x), want (0x%02x, 0x%02x)",
				tt.v, lsb, msb, tt.lsb, tt.msb)
		}
	}
}

func TestUnpackIgnoresReservedBits(t *testing.T) {
	// Bits above [1:0] of the high byte are reserved and must not leak into
	// the decoded sample.
	if got := Unpack(0xFF, 0xFF); got != MaxSample {
		t.Errorf("Unpack(0xFF, 0xFF) = %d, want %d", got, MaxSample)
	}
}

func TestRescale8To10FixedPoints(t *testing.T) {
	tests := []struct {
		in   byte
		want Sample
	}{
		{0, 0},
		{128, 514},
		{255, 1023},
	}
	for _, tt := range tests {
		if got := Rescale8To10(tt.in); got != tt.want {
			t.Errorf("Rescale8To10(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRescale8To10Monotonic(t *testing.T) {
	prev := Rescale8To10(0)
	for v := 1; v <= 255; v++ {
		cur := Rescale8To10(byte(v))
		if cur <= prev {
			t.Fatalf("Rescale8To10 not strictly increasing at %d: %d <= %d", v, cur, prev)
		}
		if int(cur) != (v*MaxSample+127)/255 {
			t.Fatalf("Rescale8To10(%d) = %d, disagrees with formula", v, cur)
		}
		prev = cur
	}
}

func TestScaledCodec(t *testing.T) {
	c, err := NewCodec(16)
	if err != nil {
		t.Fatalf("NewCodec(16): %v", err)
	}
	for _, v := range []int{0, 1, 255, 512, 1023} {
		lsb, msb, err := c.Pack(v)
		if err != nil {
			t.Fatalf("scaled Pack(%d): %v", v, err)
		}
		p := int(msb)<<8 | int(lsb)
		if p != v*16 {
			t.Errorf("scaled Pack(%d) packed %d, want %d", v, p, v*16)
		}
		if got := c.Unpack(lsb, msb); int(got) != v {
			t.Errorf("scaled Unpack(Pack(%d)) = %d", v, got)
		}
	}
}

func TestNewCodecRejectsUnknownScale(t *testing.T) {
	for _, scale := range []int{0, -1, 2, 4, 32} {
		if _, err := NewCodec(scale); err == nil {
			t.Errorf("NewCodec(%d) accepted, want error", scale)
		}
	}
}
