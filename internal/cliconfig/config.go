// Package cliconfig layers rg10pat configuration from defaults, an optional
// TOML file, RG10PAT_* environment variables and command-line flags, in that
// order of increasing precedence.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the shared tool configuration. Use DefaultConfig() for the
// hardware defaults the tool was validated against.
type Config struct {
	// Bus is the I2C bus index (/dev/i2c-<Bus>).
	Bus int
	// DeviceAddr is the sensor's 7-bit device address.
	DeviceAddr int
	// SettleDelay is the pause after each register pair write.
	SettleDelay time.Duration
	// Scale selects the register codec variant: 1 for plain 10-bit pairs,
	// 16 for the premultiplied registers.
	Scale int

	// DriverModule is the kernel module bound to the sensor.
	DriverModule string
	// CameraService is the systemd unit that depends on the driver.
	CameraService string

	// SensorID and SensorMode select the preview pipeline source.
	SensorID   int
	SensorMode int
	// Preview launches the preview pipeline after programming the pattern.
	Preview bool

	// Debounce coalesces bursts of pattern-file change events in watch mode.
	Debounce time.Duration
}

// DefaultConfig returns a Config with the defaults for the IMX477 devkit.
func DefaultConfig() Config {
	return Config{
		Bus:           2,
		DeviceAddr:    0x10,
		SettleDelay:   100 * time.Millisecond,
		Scale:         1,
		DriverModule:  "li_imx477",
		CameraService: "nvargus-daemon",
		SensorID:      1,
		SensorMode:    0,
		Debounce:      200 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Bus < 0 {
		return fmt.Errorf("bus index must be non-negative, got %d", c.Bus)
	}
	if c.DeviceAddr < 0 || c.DeviceAddr > 0x7F {
		return fmt.Errorf("device address 0x%x outside the 7-bit range", c.DeviceAddr)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle delay must be non-negative, got %v", c.SettleDelay)
	}
	if c.Scale != 1 && c.Scale != 16 {
		return fmt.Errorf("register scale must be 1 or 16, got %d", c.Scale)
	}
	if c.DriverModule == "" {
		return fmt.Errorf("driver-module is required")
	}
	if c.CameraService == "" {
		return fmt.Errorf("camera-service is required")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %v", c.Debounce)
	}
	return nil
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// configSetter helps apply configuration values while respecting flag
// precedence: a value is only applied when the corresponding flag has not
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not
// changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination if
// valid.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}
