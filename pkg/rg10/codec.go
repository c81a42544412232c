// Package rg10 implements the RG10 sample codec: 10-bit raw samples packed
// across two bytes, least-significant byte first, with the remaining payload
// bits in the low bits of the second byte. The same layout is used for the
// sensor's register pairs and for raw frame files.
package rg10

import "fmt"

// Sample is a 10-bit raw sample value in [0, MaxSample].
type Sample uint16

// MaxSample is the largest value a 10-bit sample can hold.
const MaxSample = 1023

// RangeError reports a value outside the 10-bit sample range. It is returned
// before anything is written to hardware or disk.
type RangeError struct {
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("rg10: value %d out of range [0, %d]", e.Value, MaxSample)
}

// Validate reports whether v fits the 10-bit sample range.
func Validate(v int) error {
	if v < 0 || v > MaxSample {
		return &RangeError{Value: v}
	}
	return nil
}

// Codec splits samples across a register pair. Scale covers sensor variants
// whose registers hold the sample premultiplied (the x16 registers); the
// package-level Pack and Unpack use the plain scale-1 codec.
type Codec struct {
	scale int
}

// NewCodec returns a codec for the given register scale. Supported scales
// are 1 and 16.
func NewCodec(scale int) (Codec, error) {
	switch scale {
	case 1, 16:
		return Codec{scale: scale}, nil
	default:
		return Codec{}, fmt.Errorf("rg10: unsupported register scale %d (want 1 or 16)", scale)
	}
}

// Scale returns the codec's register scale.
func (c Codec) Scale() int { return c.scale }

// Pack splits v into its register pair bytes, low 8 bits first. It fails
// with a RangeError before producing any bytes when v is out of range.
func (c Codec) Pack(v int) (lsb, msb byte, err error) {
	if err := Validate(v); err != nil {
		return 0, 0, err
	}
	p := v * c.scale
	return byte(p & 0xFF), byte(p >> 8), nil
}

// Unpack reassembles a sample from its register pair bytes. Bits above the
// codec's payload width are reserved and ignored.
func (c Codec) Unpack(lsb, msb byte) Sample {
	mask := byte((MaxSample * c.scale) >> 8)
	p := int(msb&mask)<<8 | int(lsb)
	return Sample(p / c.scale)
}

var defaultCodec = Codec{scale: 1}

// Pack packs v with the unscaled codec: lsb holds the low 8 bits, msb the
// top 2 bits of the sample.
func Pack(v int) (lsb, msb byte, err error) { return defaultCodec.Pack(v) }

// Unpack is the inverse of Pack: (msb & 0x03) << 8 | lsb.
func Unpack(lsb, msb byte) Sample { return defaultCodec.Unpack(lsb, msb) }

// rescaleLUT maps every 8-bit value to its rounded 10-bit equivalent. Built
// once at package init, read-only afterwards.
var rescaleLUT = buildRescaleLUT()

func buildRescaleLUT() [256]Sample {
	var t [256]Sample
	for i := range t {
		t[i] = Sample((i*MaxSample + 127) / 255)
	}
	return t
}

// Rescale8To10 linearly rescales an 8-bit value into the 10-bit sample
// range, rounding to nearest: 0 maps to 0 and 255 to 1023.
func Rescale8To10(v byte) Sample {
	return rescaleLUT[v]
}
