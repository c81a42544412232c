// Package bayer lays out per-pixel samples in the RGGB color filter array
// order: period-2 rows alternating red/green and green/blue columns. It
// synthesizes frames equivalent to the sensor's test-pattern output so the
// imaging pipeline can be validated offline.
package bayer

import (
	"fmt"
	"io"

	"github.com/optiknode/rg10pat/pkg/rg10"
)

// Channel identifies the color filter covering a pixel.
type Channel uint8

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	default:
		return "?"
	}
}

// ChannelAt returns the channel for pixel (x, y), 0-indexed, under RGGB
// ordering: even rows alternate R/G starting at R, odd rows alternate G/B
// starting at G.
func ChannelAt(x, y int) Channel {
	if y%2 == 0 {
		if x%2 == 0 {
			return Red
		}
		return Green
	}
	if x%2 == 0 {
		return Green
	}
	return Blue
}

// Source yields the sample value for a pixel's channel. Implementations must
// be pure: the encoder may evaluate any pixel more than once when a row range
// is re-synthesized.
type Source interface {
	Sample(x, y int, ch Channel) rg10.Sample
}

// Uniform is a Source holding one fixed value per channel.
type Uniform struct {
	R, G, B rg10.Sample
}

// NewUniform validates the three channel values and returns the fixed
// source. Values are rejected before any frame is synthesized.
func NewUniform(r, g, b int) (Uniform, error) {
	for _, v := range []int{r, g, b} {
		if err := rg10.Validate(v); err != nil {
			return Uniform{}, err
		}
	}
	return Uniform{R: rg10.Sample(r), G: rg10.Sample(g), B: rg10.Sample(b)}, nil
}

// Sample implements Source.
func (u Uniform) Sample(_, _ int, ch Channel) rg10.Sample {
	switch ch {
	case Red:
		return u.R
	case Blue:
		return u.B
	default:
		return u.G
	}
}

// Frame is a width×height mosaic over a Source. Frames are transient: built
// per invocation, owned by their creator and discarded after use.
type Frame struct {
	W, H int
	Src  Source
}

// NewFrame validates the geometry and returns a frame over src.
func NewFrame(w, h int, src Source) (*Frame, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("bayer: invalid frame geometry %dx%d", w, h)
	}
	if src == nil {
		return nil, fmt.Errorf("bayer: nil sample source")
	}
	return &Frame{W: w, H: h, Src: src}, nil
}

// SampleAt returns the sample for pixel (x, y).
func (f *Frame) SampleAt(x, y int) rg10.Sample {
	return f.Src.Sample(x, y, ChannelAt(x, y))
}

// Row fills dst with row y in column order. len(dst) must equal the frame
// width. Rows can be produced in any order and any number of times.
func (f *Frame) Row(y int, dst []rg10.Sample) error {
	if y < 0 || y >= f.H {
		return fmt.Errorf("bayer: row %d out of range [0, %d)", y, f.H)
	}
	if len(dst) != f.W {
		return fmt.Errorf("bayer: row buffer holds %d samples, want %d", len(dst), f.W)
	}
	for x := range dst {
		dst[x] = f.SampleAt(x, y)
	}
	return nil
}

// EncodeRows packs rows [from, to) to w in the RG10 raw layout, one row at a
// time. Disjoint row ranges written to consecutive sinks concatenate to the
// same bytes as a single EncodeTo, so streaming writers never need to buffer
// a whole frame.
func (f *Frame) EncodeRows(w io.Writer, from, to int) error {
	if from < 0 || to > f.H || from > to {
		return fmt.Errorf("bayer: row range [%d, %d) outside frame of height %d", from, to, f.H)
	}
	enc := rg10.NewWriter(w)
	row := make([]rg10.Sample, f.W)
	for y := from; y < to; y++ {
		if err := f.Row(y, row); err != nil {
			return err
		}
		if err := enc.WriteSamples(row); err != nil {
			return fmt.Errorf("bayer: encode row %d: %w", y, err)
		}
	}
	return nil
}

// EncodeTo writes the whole frame to w: exactly W*H*2 bytes in row-major
// order.
func (f *Frame) EncodeTo(w io.Writer) error {
	return f.EncodeRows(w, 0, f.H)
}
