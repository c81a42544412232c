// Package oscmd implements the driver, service and preview collaborator
// ports by shelling out to the OS tools that own them: rmmod/modprobe for
// the kernel module, systemctl for the dependent service and gst-launch for
// the preview pipeline.
package oscmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/optiknode/rg10pat/internal/domain"
)

// Runner executes one external command and returns its combined output.
// Tests substitute their own implementation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// notLoadedMarker is what rmmod prints when the module is already out.
const notLoadedMarker = "is not currently loaded"

// DriverModule binds and unbinds a kernel camera driver by module name.
type DriverModule struct {
	Module string
	Runner Runner
}

// NewDriverModule returns a DriverModule using os/exec.
func NewDriverModule(module string) *DriverModule {
	return &DriverModule{Module: module, Runner: ExecRunner{}}
}

// Detach unloads the module. A module that is already unloaded counts as
// success, not an error.
func (d *DriverModule) Detach(ctx context.Context) (domain.DetachStatus, error) {
	out, err := d.Runner.Run(ctx, "rmmod", d.Module)
	if err != nil {
		if strings.Contains(string(out), notLoadedMarker) {
			return domain.AlreadyDetached, nil
		}
		return 0, processErr("rmmod", out, err)
	}
	return domain.Detached, nil
}

// Reattach loads the module back.
func (d *DriverModule) Reattach(ctx context.Context) error {
	if out, err := d.Runner.Run(ctx, "modprobe", d.Module); err != nil {
		return processErr("modprobe", out, err)
	}
	return nil
}

// SystemService restarts a systemd unit.
type SystemService struct {
	Unit   string
	Runner Runner
}

// NewSystemService returns a SystemService using os/exec.
func NewSystemService(unit string) *SystemService {
	return &SystemService{Unit: unit, Runner: ExecRunner{}}
}

// Restart restarts the unit.
func (s *SystemService) Restart(ctx context.Context) error {
	if out, err := s.Runner.Run(ctx, "systemctl", "restart", s.Unit); err != nil {
		return processErr("systemctl", out, err)
	}
	return nil
}

// GstPreview launches the nvargus preview pipeline and blocks until it exits
// or ctx is cancelled. Cancellation is how the operator ends the preview, so
// it is not reported as a failure.
type GstPreview struct {
	SensorID   int
	SensorMode int
}

// Run implements the Previewer port.
func (p *GstPreview) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "gst-launch-1.0",
		"nvarguscamerasrc",
		fmt.Sprintf("sensor-id=%d", p.SensorID),
		fmt.Sprintf("sensor-mode=%d", p.SensorMode),
		"!", "nv3dsink",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return processErr("gst-launch-1.0", nil, err)
	}
	return nil
}

func processErr(name string, out []byte, err error) *domain.ProcessError {
	return &domain.ProcessError{
		Name:   name,
		Output: string(bytes.TrimSpace(out)),
		Err:    err,
	}
}
