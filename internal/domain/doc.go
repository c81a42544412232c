// Package domain contains the core value types and the error taxonomy shared
// by the sensor programming layers.
//
// It has no dependencies on infrastructure concerns (the I2C bus, os/exec,
// logging) and is testable without mocks or hardware.
//
// # Error classes
//
//   - [BusError]: a register write failed in transport; the transaction was
//     aborted at that register.
//   - [ProcessError]: an external collaborator command exited non-zero.
//   - [RestoreError]: driver/service restoration itself failed after the test
//     pattern ran. Fatal and distinct: the sensor may be left undriven, so
//     this class must reach the operator and is never folded into setup
//     failures.
//
// Sample range validation lives with the codec in pkg/rg10 and always runs
// before any hardware or file mutation.
package domain
