package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate(): %v", err)
	}
	if cfg.DeviceAddr != 0x10 {
		t.Errorf("DeviceAddr = 0x%x, want 0x10", cfg.DeviceAddr)
	}
	if cfg.SettleDelay != 100*time.Millisecond {
		t.Errorf("SettleDelay = %v, want 100ms", cfg.SettleDelay)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative bus", func(c *Config) { c.Bus = -1 }},
		{"address above 7 bits", func(c *Config) { c.DeviceAddr = 0x80 }},
		{"negative address", func(c *Config) { c.DeviceAddr = -1 }},
		{"negative settle delay", func(c *Config) { c.SettleDelay = -time.Second }},
		{"bad scale", func(c *Config) { c.Scale = 2 }},
		{"empty driver module", func(c *Config) { c.DriverModule = "" }},
		{"empty camera service", func(c *Config) { c.CameraService = "" }},
		{"zero debounce", func(c *Config) { c.Debounce = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted a bad config")
			}
		})
	}
}

func TestEnvOverridesAndFlagPrecedence(t *testing.T) {
	t.Setenv("RG10PAT_BUS", "7")
	t.Setenv("RG10PAT_DRIVER_MODULE", "imx477_env")
	t.Setenv("RG10PAT_SETTLE_DELAY", "50ms")
	t.Setenv("RG10PAT_PREVIEW", "true")

	cfg := DefaultConfig()
	// driver-module was set on the command line, so the env must not win.
	changed := map[string]bool{"driver-module": true}
	cfg.DriverModule = "imx477_flag"

	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}
	if cfg.Bus != 7 {
		t.Errorf("Bus = %d, want 7 from env", cfg.Bus)
	}
	if cfg.DriverModule != "imx477_flag" {
		t.Errorf("DriverModule = %q, flag should beat env", cfg.DriverModule)
	}
	if cfg.SettleDelay != 50*time.Millisecond {
		t.Errorf("SettleDelay = %v, want 50ms from env", cfg.SettleDelay)
	}
	if !cfg.Preview {
		t.Error("Preview not set from env")
	}
}

func TestEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("RG10PAT_BUS", "two")
	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Error("ApplyEnvConfig accepted a non-numeric bus")
	}

	t.Setenv("RG10PAT_BUS", "")
	t.Setenv("RG10PAT_SETTLE_DELAY", "fast")
	cfg = DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Error("ApplyEnvConfig accepted a malformed duration")
	}
}
