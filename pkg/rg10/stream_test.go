package rg10

import (
	"bytes"
	"testing"
)

func TestWriterLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteSamples([]Sample{1023, 512, 0, 256}); err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}
	want := []byte{0xFF, 0x03, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("encoded bytes = % x, want % x", buf.Bytes(), want)
	}
}

func TestReadFrameExactLength(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteSamples([]Sample{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("WriteSamples: %v", err)
	}

	samples, err := ReadFrame(bytes.NewReader(buf.Bytes()), 3, 2)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	for i, want := range []Sample{1, 2, 3, 4, 5, 6} {
		if samples[i] != want {
			t.Errorf("samples[%d] = %d, want %d", i, samples[i], want)
		}
	}
}

func TestReadFrameRejectsShortStream(t *testing.T) {
	if _, err := ReadFrame(bytes.NewReader(make([]byte, 10)), 3, 2); err == nil {
		t.Error("ReadFrame accepted a short stream")
	}
}

func TestReadFrameRejectsTrailingData(t *testing.T) {
	if _, err := ReadFrame(bytes.NewReader(make([]byte, 14)), 3, 2); err == nil {
		t.Error("ReadFrame accepted trailing data")
	}
}

func TestReadFrameRejectsNegativeGeometry(t *testing.T) {
	if _, err := ReadFrame(bytes.NewReader(nil), -1, 2); err == nil {
		t.Error("ReadFrame accepted negative width")
	}
}
