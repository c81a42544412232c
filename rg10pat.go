// Package rg10pat programs solid-color test patterns into an IMX477 image
// sensor over I2C and works with the matching RG10 raw Bayer frames.
//
// Example usage:
//
//	cfg := rg10pat.DefaultConfig()
//	pat, err := rg10pat.ResolvePattern("grey", "", 0, 0, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rg10pat.Send(context.Background(), cfg, pat); err != nil {
//	    log.Fatal(err)
//	}
package rg10pat

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/optiknode/rg10pat/internal/app"
	"github.com/optiknode/rg10pat/internal/cliconfig"
	"github.com/optiknode/rg10pat/internal/domain"
	"github.com/optiknode/rg10pat/pkg/bayer"
)

// Config holds the tool configuration. Use DefaultConfig() to get a Config
// with the hardware defaults.
type Config = cliconfig.Config

// Pattern is a solid-color test pattern: one 10-bit value per color channel.
type Pattern = domain.Pattern

// DefaultConfig returns a Config with the defaults for the IMX477 devkit.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// ResolvePattern picks the pattern from a named color, a "#RRGGBB" hex triple
// or explicit 10-bit channel values. The three inputs are mutually exclusive.
func ResolvePattern(color, hex string, r, g, b int) (Pattern, error) {
	return cliconfig.ResolvePattern(color, hex, r, g, b)
}

// Send programs pat into the sensor and restores the camera driver before
// returning. It blocks until the session completes or ctx is cancelled;
// cancellation still runs driver restoration.
func Send(ctx context.Context, cfg Config, pat Pattern) error {
	return app.Send(ctx, cfg, pat, cliconfig.Logger())
}

// WriteFrame writes a synthetic width×height RG10 raw frame of pat to w:
// exactly width*height*2 bytes in row-major RGGB order.
func WriteFrame(w io.Writer, width, height int, pat Pattern) error {
	src, err := bayer.NewUniform(pat.R, pat.G, pat.B)
	if err != nil {
		return err
	}
	frame, err := bayer.NewFrame(width, height, src)
	if err != nil {
		return err
	}
	return frame.EncodeTo(w)
}

// Logger returns the package-level zerolog logger used by the tool.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
