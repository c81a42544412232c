package domain

import "fmt"

// BusError reports a failed register write. Reg is the register address the
// transport refused; the remaining writes of that transaction were aborted
// because register writes are not idempotent against a half-configured
// sensor.
type BusError struct {
	Reg uint16
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bus write to register 0x%04x: %v", e.Reg, e.Err)
}

func (e *BusError) Unwrap() error { return e.Err }

// ProcessError reports an external collaborator command that failed.
type ProcessError struct {
	Name   string // command name, e.g. "rmmod"
	Output string // trimmed combined output, may be empty
	Err    error
}

func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", e.Name, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// RestoreError wraps a failure to rebind the camera driver or restart its
// dependent service after a test-pattern session. The sensor may be left
// permanently undriven until an operator intervenes.
type RestoreError struct {
	Err error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore sensor driver state: %v", e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
