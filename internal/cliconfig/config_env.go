package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (RG10PAT_*). Values override the config file but are overridden by
// explicitly set flags (changed map). Returns an error if any variable has
// an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setIntFromString("bus", os.Getenv("RG10PAT_BUS"), &cfg.Bus); err != nil {
		return err
	}
	if err := s.setIntFromString("device-addr", os.Getenv("RG10PAT_DEVICE_ADDR"), &cfg.DeviceAddr); err != nil {
		return err
	}
	if err := s.setIntFromString("scale", os.Getenv("RG10PAT_SCALE"), &cfg.Scale); err != nil {
		return err
	}
	if err := s.setIntFromString("sensor-id", os.Getenv("RG10PAT_SENSOR_ID"), &cfg.SensorID); err != nil {
		return err
	}
	if err := s.setIntFromString("sensor-mode", os.Getenv("RG10PAT_SENSOR_MODE"), &cfg.SensorMode); err != nil {
		return err
	}

	s.setString("driver-module", os.Getenv("RG10PAT_DRIVER_MODULE"), &cfg.DriverModule)
	s.setString("camera-service", os.Getenv("RG10PAT_CAMERA_SERVICE"), &cfg.CameraService)

	if err := s.setDuration("settle-delay", os.Getenv("RG10PAT_SETTLE_DELAY"), &cfg.SettleDelay); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("RG10PAT_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("preview", os.Getenv("RG10PAT_PREVIEW"), &cfg.Preview)

	return nil
}
