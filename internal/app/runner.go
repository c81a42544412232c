// Package app wires the adapters into the sensor session and implements the
// operations behind the rg10pat subcommands.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/optiknode/rg10pat/internal/adapters/i2cdev"
	"github.com/optiknode/rg10pat/internal/adapters/oscmd"
	"github.com/optiknode/rg10pat/internal/cliconfig"
	"github.com/optiknode/rg10pat/internal/domain"
	"github.com/optiknode/rg10pat/internal/ports"
	"github.com/optiknode/rg10pat/internal/sensor"
	"github.com/optiknode/rg10pat/pkg/bayer"
	"github.com/optiknode/rg10pat/pkg/rg10"
)

// NewController assembles a session controller from the configuration: the
// /dev/i2c bus adapter, the rmmod/modprobe driver adapter, the systemctl
// service adapter and, when enabled, the gst-launch preview.
func NewController(cfg cliconfig.Config, log zerolog.Logger) (*sensor.Controller, error) {
	codec, err := rg10.NewCodec(cfg.Scale)
	if err != nil {
		return nil, err
	}

	seq := sensor.NewSequencer(
		i2cdev.Opener(),
		cfg.Bus,
		uint8(cfg.DeviceAddr),
		log,
		sensor.WithSettleDelay(cfg.SettleDelay),
	)

	var preview *oscmd.GstPreview
	if cfg.Preview {
		preview = &oscmd.GstPreview{SensorID: cfg.SensorID, SensorMode: cfg.SensorMode}
	}

	ctl := sensor.NewController(
		oscmd.NewDriverModule(cfg.DriverModule),
		oscmd.NewSystemService(cfg.CameraService),
		previewOrNil(preview),
		seq,
		codec,
		log,
	)
	return ctl, nil
}

// previewOrNil keeps a nil *GstPreview from becoming a non-nil interface.
func previewOrNil(p *oscmd.GstPreview) ports.Previewer {
	if p == nil {
		return nil
	}
	return p
}

// Send programs the pattern into the sensor and restores the driver.
func Send(ctx context.Context, cfg cliconfig.Config, pat domain.Pattern, log zerolog.Logger) error {
	ctl, err := NewController(cfg, log)
	if err != nil {
		return err
	}
	return ctl.Run(ctx, pat)
}

// Generate synthesizes a width×height RGGB frame of pat and writes the raw
// stream to path. The frame is encoded row by row so arbitrarily large
// geometries never buffer a whole frame.
func Generate(path string, width, height int, pat domain.Pattern, log zerolog.Logger) error {
	src, err := bayer.NewUniform(pat.R, pat.G, pat.B)
	if err != nil {
		return err
	}
	frame, err := bayer.NewFrame(width, height, src)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := frame.EncodeTo(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("width", width).Int("height", height).
		Int("bytes", width*height*2).
		Msg("frame written")
	return nil
}

// ChannelStats summarizes one color channel of a decoded frame.
type ChannelStats struct {
	Channel bayer.Channel
	Count   int
	Min     rg10.Sample
	Max     rg10.Sample
	Mean    float64
}

// FrameReport is the result of decoding a raw frame.
type FrameReport struct {
	Width, Height int
	Channels      []ChannelStats
}

// Inspect decodes a width×height raw frame from r and reports per-channel
// sample statistics under the RGGB layout.
func Inspect(r io.Reader, width, height int) (*FrameReport, error) {
	samples, err := rg10.ReadFrame(r, width, height)
	if err != nil {
		return nil, err
	}

	var (
		count [3]int
		sum   [3]uint64
		min   [3]rg10.Sample
		max   [3]rg10.Sample
	)
	for i := range min {
		min[i] = rg10.MaxSample
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ch := bayer.ChannelAt(x, y)
			s := samples[y*width+x]
			count[ch]++
			sum[ch] += uint64(s)
			if s < min[ch] {
				min[ch] = s
			}
			if s > max[ch] {
				max[ch] = s
			}
		}
	}

	report := &FrameReport{Width: width, Height: height}
	for _, ch := range []bayer.Channel{bayer.Red, bayer.Green, bayer.Blue} {
		st := ChannelStats{Channel: ch, Count: count[ch]}
		if st.Count > 0 {
			st.Min = min[ch]
			st.Max = max[ch]
			st.Mean = float64(sum[ch]) / float64(st.Count)
		}
		report.Channels = append(report.Channels, st)
	}
	return report, nil
}

// InspectFile is Inspect over a file on disk.
func InspectFile(path string, width, height int) (*FrameReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Inspect(bufio.NewReader(f), width, height)
}
