package domain

import "github.com/optiknode/rg10pat/pkg/rg10"

// Pattern is the 10-bit channel triple programmed into the sensor's
// test-pattern registers. The green value drives both green registers of the
// RGGB mosaic.
type Pattern struct {
	R, G, B int
}

// Validate rejects patterns with any channel outside the 10-bit range.
func (p Pattern) Validate() error {
	for _, v := range []int{p.R, p.G, p.B} {
		if err := rg10.Validate(v); err != nil {
			return err
		}
	}
	return nil
}

// DetachStatus reports how a driver detach request concluded.
type DetachStatus int

const (
	// Detached means the driver was bound and has been unbound.
	Detached DetachStatus = iota
	// AlreadyDetached means the driver was not bound to begin with. This is
	// success, not an error.
	AlreadyDetached
)

func (s DetachStatus) String() string {
	switch s {
	case Detached:
		return "Detached"
	case AlreadyDetached:
		return "AlreadyDetached"
	default:
		return "Unknown"
	}
}
