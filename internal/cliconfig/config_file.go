package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config but uses strings for durations and pointers for
// values whose zero is meaningful, to keep the TOML friendly.
type fileConfig struct {
	Bus           *int   `toml:"bus"`
	DeviceAddr    *int   `toml:"device_addr"`
	SettleDelay   string `toml:"settle_delay"`
	Scale         *int   `toml:"scale"`
	DriverModule  string `toml:"driver_module"`
	CameraService string `toml:"camera_service"`
	SensorID      *int   `toml:"sensor_id"`
	SensorMode    *int   `toml:"sensor_mode"`
	Preview       *bool  `toml:"preview"`
	Debounce      string `toml:"debounce"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.rg10pat/config.toml if the user home
// directory is accessible, else the empty string.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".rg10pat", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct,
// respecting flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("bus", fc.Bus, &cfg.Bus)
	s.setInt("device-addr", fc.DeviceAddr, &cfg.DeviceAddr)
	s.setInt("scale", fc.Scale, &cfg.Scale)
	s.setString("driver-module", fc.DriverModule, &cfg.DriverModule)
	s.setString("camera-service", fc.CameraService, &cfg.CameraService)
	s.setInt("sensor-id", fc.SensorID, &cfg.SensorID)
	s.setInt("sensor-mode", fc.SensorMode, &cfg.SensorMode)
	s.setBool("preview", fc.Preview, &cfg.Preview)

	if err := s.setDuration("settle-delay", fc.SettleDelay, &cfg.SettleDelay); err != nil {
		return err
	}
	return s.setDuration("debounce", fc.Debounce, &cfg.Debounce)
}
