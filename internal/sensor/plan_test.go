package sensor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/optiknode/rg10pat/internal/domain"
	"github.com/optiknode/rg10pat/pkg/rg10"
)

func mustCodec(t *testing.T, scale int) rg10.Codec {
	t.Helper()
	c, err := rg10.NewCodec(scale)
	if err != nil {
		t.Fatalf("NewCodec(%d): %v", scale, err)
	}
	return c
}

func flatten(writes []PairWrite) []RegisterWrite {
	var out []RegisterWrite
	for _, pw := range writes {
		w := pw.Writes()
		out = append(out, w[0], w[1])
	}
	return out
}

func TestPatternWritesSequence(t *testing.T) {
	writes, err := PatternWrites(Registers, mustCodec(t, 1), domain.Pattern{R: 1023, G: 512, B: 0})
	if err != nil {
		t.Fatalf("PatternWrites: %v", err)
	}

	got := flatten(writes)
	want := []RegisterWrite{
		{Reg: 0x0600, Value: 0x01},
		{Reg: 0x0601, Value: 0x00},
		{Reg: 0x0602, Value: 0xFF},
		{Reg: 0x0603, Value: 0x03},
		{Reg: 0x0604, Value: 0x00},
		{Reg: 0x0605, Value: 0x02},
		{Reg: 0x0606, Value: 0x00},
		{Reg: 0x0607, Value: 0x02},
		{Reg: 0x0608, Value: 0x00},
		{Reg: 0x0609, Value: 0x00},
	}
	if len(got) != 10 {
		t.Fatalf("plan has %d register writes, want 10", len(got))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("register write sequence mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Reg <= got[i-1].Reg {
			t.Errorf("register addresses not ascending at index %d: 0x%04x after 0x%04x",
				i, got[i].Reg, got[i-1].Reg)
		}
	}
}

func TestPatternWritesValidatesBeforeBuilding(t *testing.T) {
	for _, pat := range []domain.Pattern{
		{R: -1, G: 0, B: 0},
		{R: 0, G: 1024, B: 0},
		{R: 0, G: 0, B: 9999},
	} {
		writes, err := PatternWrites(Registers, mustCodec(t, 1), pat)
		var re *rg10.RangeError
		if !errors.As(err, &re) {
			t.Errorf("PatternWrites(%+v) error = %v, want RangeError", pat, err)
		}
		if writes != nil {
			t.Errorf("PatternWrites(%+v) returned a partial plan", pat)
		}
	}
}

func TestChannelWritesSkipsEnablePair(t *testing.T) {
	writes, err := ChannelWrites(Registers, mustCodec(t, 1), domain.Pattern{R: 1, G: 2, B: 3})
	if err != nil {
		t.Fatalf("ChannelWrites: %v", err)
	}
	if len(writes) != 4 {
		t.Fatalf("ChannelWrites returned %d pairs, want 4", len(writes))
	}
	if writes[0].Pair != Registers.Red {
		t.Errorf("first channel pair = %+v, want Red", writes[0].Pair)
	}
}

func TestPatternWritesScaledCodec(t *testing.T) {
	writes, err := PatternWrites(Registers, mustCodec(t, 16), domain.Pattern{R: 1023, G: 0, B: 0})
	if err != nil {
		t.Fatalf("PatternWrites: %v", err)
	}
	red := writes[1]
	// 1023 * 16 = 0x3FF0
	if red.LSB != 0xF0 || red.MSB != 0x3F {
		t.Errorf("scaled red pair = (0x%02x, 0x%02x), want (0xF0, 0x3F)", red.LSB, red.MSB)
	}
}
