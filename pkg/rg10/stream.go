package rg10

import (
	"errors"
	"fmt"
	"io"
)

// Writer encodes samples to an underlying stream in the RG10 raw layout: two
// bytes per sample, low byte first. A W×H frame is exactly W*H*2 bytes.
type Writer struct {
	w   io.Writer
	buf []byte
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteSamples packs and writes the given samples in order. It validates
// every sample before writing any bytes, so a frame is never partially
// emitted because of a bad value.
func (w *Writer) WriteSamples(samples []Sample) error {
	if cap(w.buf) < len(samples)*2 {
		w.buf = make([]byte, 0, len(samples)*2)
	}
	w.buf = w.buf[:0]
	for _, s := range samples {
		lsb, msb, err := Pack(int(s))
		if err != nil {
			return err
		}
		w.buf = append(w.buf, lsb, msb)
	}
	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("rg10: write samples: %w", err)
	}
	return nil
}

// ReadFrame decodes a width×height frame from r. The stream must hold
// exactly width*height*2 bytes; a short or overlong stream is an error.
func ReadFrame(r io.Reader, width, height int) ([]Sample, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("rg10: invalid frame geometry %dx%d", width, height)
	}
	n := width * height
	raw := make([]byte, n*2)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("rg10: frame shorter than %dx%d samples: %w", width, height, err)
	}
	var extra [1]byte
	switch _, err := io.ReadFull(r, extra[:]); {
	case err == nil:
		return nil, fmt.Errorf("rg10: trailing data after %dx%d frame", width, height)
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("rg10: read frame: %w", err)
	}
	out := make([]Sample, n)
	for i := range out {
		out[i] = Unpack(raw[2*i], raw[2*i+1])
	}
	return out, nil
}
