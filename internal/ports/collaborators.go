package ports

import (
	"context"

	"github.com/optiknode/rg10pat/internal/domain"
)

// DriverController detaches and reattaches the kernel driver that owns the
// sensor while it is running normally.
type DriverController interface {
	// Detach unbinds the driver. A driver that is not currently bound is
	// reported as domain.AlreadyDetached with a nil error.
	Detach(ctx context.Context) (domain.DetachStatus, error)

	// Reattach binds the driver back.
	Reattach(ctx context.Context) error
}

// ServiceController restarts the camera service that depends on the driver.
type ServiceController interface {
	Restart(ctx context.Context) error
}

// Previewer runs a live view of the sensor output. It blocks until the
// preview ends or ctx is cancelled. Previews are best effort: a failure must
// never block driver restoration.
type Previewer interface {
	Run(ctx context.Context) error
}
