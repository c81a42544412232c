// Package ports defines the interfaces that connect the sensor programming
// core to the outside world: the register bus and the OS-level collaborators
// that own the camera driver, its dependent service and the preview pipeline.
//
// The core layers (internal/sensor, internal/app) depend only on these
// interfaces. Infrastructure adapters (internal/adapters) implement them with
// concrete implementations (/dev/i2c device nodes, os/exec); tests substitute
// doubles, so the lifecycle state machine is testable without hardware.
package ports
