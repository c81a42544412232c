package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/optiknode/rg10pat/internal/app"
	"github.com/optiknode/rg10pat/internal/cliconfig"
	"github.com/optiknode/rg10pat/internal/domain"
)

var longHelp = strings.TrimSpace(`
Program solid-color test patterns into an IMX477 sensor over I2C, and
generate or decode the equivalent RG10 raw Bayer frames offline.

The send and watch commands unbind the camera kernel module, write the
test-pattern registers and restore the driver afterwards; they need the
I2C device node and module management permissions (typically root).
`)

var exampleUsage = strings.TrimSpace(`
  rg10pat send --color grey
  rg10pat send --hex '#FF8800' --preview
  rg10pat watch pattern.toml
  rg10pat gen --color red --width 4056 --height 3040 -o red.raw
  rg10pat decode red.raw --width 4056 --height 3040
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// patternFlags holds the mutually exclusive pattern inputs shared by the
// commands that need one.
type patternFlags struct {
	color   string
	hex     string
	r, g, b int
}

func (p *patternFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.color, "color", "", fmt.Sprintf("named color (%s)", strings.Join(cliconfig.ColorNames(), ", ")))
	cmd.Flags().StringVar(&p.hex, "hex", "", "8-bit #RRGGBB color, rescaled to 10 bits")
	cmd.Flags().IntVar(&p.r, "r", 0, "red channel value (0-1023)")
	cmd.Flags().IntVar(&p.g, "g", 0, "green channel value (0-1023)")
	cmd.Flags().IntVar(&p.b, "b", 0, "blue channel value (0-1023)")
}

func (p *patternFlags) resolve() (domain.Pattern, error) {
	return cliconfig.ResolvePattern(p.color, p.hex, p.r, p.g, p.b)
}

// changedFlags collects the names of flags set explicitly on the command
// line, local and inherited, so file and env values never override them.
func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	cmd.InheritedFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	return changed
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var (
		cfgPath     string
		settleDelay time.Duration
		debounce    time.Duration
	)

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "rg10pat",
		Short:   "IMX477 test-pattern programmer and RG10 frame tool",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := changedFlags(cmd)

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Duration flags land in locals; copy the explicit ones over.
			if changed["settle-delay"] {
				cfg.SettleDelay = settleDelay
			}
			if changed["debounce"] {
				cfg.Debounce = debounce
			}

			return cfg.Validate()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.rg10pat/config.toml)")
	root.PersistentFlags().IntVar(&cfg.Bus, "bus", cfg.Bus, "I2C bus index (/dev/i2c-N)")
	root.PersistentFlags().IntVar(&cfg.DeviceAddr, "device-addr", cfg.DeviceAddr, "7-bit I2C device address")
	root.PersistentFlags().DurationVar(&settleDelay, "settle-delay", cfg.SettleDelay, "pause after each register pair write")
	root.PersistentFlags().IntVar(&cfg.Scale, "scale", cfg.Scale, "register codec scale (1 or 16)")
	root.PersistentFlags().StringVar(&cfg.DriverModule, "driver-module", cfg.DriverModule, "camera kernel module name")
	root.PersistentFlags().StringVar(&cfg.CameraService, "camera-service", cfg.CameraService, "systemd unit to restart after restore")

	root.AddCommand(newSendCmd(&cfg, log))
	root.AddCommand(newWatchCmd(&cfg, &debounce, log))
	root.AddCommand(newGenCmd(log))
	root.AddCommand(newDecodeCmd())

	if err := root.Execute(); err != nil {
		var restoreErr *domain.RestoreError
		if errors.As(err, &restoreErr) {
			log.Error().Err(err).Msg("driver restoration failed; the sensor may still be emitting the test pattern")
		} else {
			log.Error().Err(err).Msg("rg10pat")
		}
		os.Exit(1)
	}
}

func newSendCmd(cfg *cliconfig.Config, log zerolog.Logger) *cobra.Command {
	var pf patternFlags
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Program a test pattern into the sensor and restore the driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pat, err := pf.resolve()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Send(ctx, *cfg, pat, log)
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&cfg.Preview, "preview", false, "launch the nvargus preview after programming")
	cmd.Flags().IntVar(&cfg.SensorID, "sensor-id", cfg.SensorID, "preview pipeline sensor id")
	cmd.Flags().IntVar(&cfg.SensorMode, "sensor-mode", cfg.SensorMode, "preview pipeline sensor mode")
	return cmd
}

func newWatchCmd(cfg *cliconfig.Config, debounce *time.Duration, log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <pattern.toml>",
		Short: "Keep the sensor in sync with a pattern file until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Watch(ctx, *cfg, args[0], log)
		},
	}
	cmd.Flags().DurationVar(debounce, "debounce", cfg.Debounce, "delay before reloading after a file change")
	return cmd
}

func newGenCmd(log zerolog.Logger) *cobra.Command {
	var (
		pf            patternFlags
		out           string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write a synthetic RG10 raw frame of a solid pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pat, err := pf.resolve()
			if err != nil {
				return err
			}
			return app.Generate(out, width, height, pat, log)
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "frame.raw", "output file path")
	cmd.Flags().IntVar(&width, "width", 4056, "frame width in pixels")
	cmd.Flags().IntVar(&height, "height", 3040, "frame height in pixels")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "decode <frame.raw>",
		Short: "Decode a raw frame and report per-channel statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.InspectFile(args[0], width, height)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d RG10 frame\n", args[0], report.Width, report.Height)
			for _, st := range report.Channels {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d samples, min %d, max %d, mean %.1f\n",
					st.Channel, st.Count, st.Min, st.Max, st.Mean)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 4056, "frame width in pixels")
	cmd.Flags().IntVar(&height, "height", 3040, "frame height in pixels")
	return cmd
}
