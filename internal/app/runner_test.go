package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/optiknode/rg10pat/internal/domain"
	"github.com/optiknode/rg10pat/pkg/bayer"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestGenerateInspectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.raw")
	pat := domain.Pattern{R: 1023, G: 700, B: 33}

	const width, height = 8, 6
	if err := Generate(path, width, height, pat, testLogger()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := info.Size(), int64(width*height*2); got != want {
		t.Fatalf("frame size = %d bytes, want %d", got, want)
	}

	report, err := InspectFile(path, width, height)
	if err != nil {
		t.Fatalf("InspectFile: %v", err)
	}
	if report.Width != width || report.Height != height {
		t.Errorf("report geometry = %dx%d", report.Width, report.Height)
	}

	// Uniform input: every channel is constant, so min == max == mean.
	want := map[bayer.Channel]int{bayer.Red: pat.R, bayer.Green: pat.G, bayer.Blue: pat.B}
	for _, st := range report.Channels {
		v := want[st.Channel]
		if int(st.Min) != v || int(st.Max) != v {
			t.Errorf("channel %s range [%d, %d], want constant %d", st.Channel, st.Min, st.Max, v)
		}
		if st.Mean != float64(v) {
			t.Errorf("channel %s mean = %v, want %d", st.Channel, st.Mean, v)
		}
	}

	// RGGB over an 8x6 frame: a quarter red, half green, a quarter blue.
	counts := map[bayer.Channel]int{}
	for _, st := range report.Channels {
		counts[st.Channel] = st.Count
	}
	if counts[bayer.Red] != 12 || counts[bayer.Green] != 24 || counts[bayer.Blue] != 12 {
		t.Errorf("channel counts = %v", counts)
	}
}

func TestGenerateRejectsBadPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.raw")
	if err := Generate(path, 4, 4, domain.Pattern{R: 2000}, testLogger()); err == nil {
		t.Fatal("Generate accepted an out-of-range channel value")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Generate created a file for an invalid pattern")
	}
}

func TestInspectFileTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.raw")
	if err := os.WriteFile(path, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := InspectFile(path, 4, 4); err == nil {
		t.Fatal("InspectFile accepted a truncated frame")
	}
}

func TestNewControllerRejectsBadScale(t *testing.T) {
	cfg := testConfig()
	cfg.Scale = 3
	if _, err := NewController(cfg, testLogger()); err == nil {
		t.Fatal("NewController accepted scale 3")
	}
}
