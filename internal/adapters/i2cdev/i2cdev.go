// Package i2cdev implements the register bus port on Linux /dev/i2c-N
// device nodes.
package i2cdev

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/optiknode/rg10pat/internal/ports"
)

// i2cSlave is the I2C_SLAVE ioctl selecting the peer device address for
// subsequent transfers on the bus file descriptor.
const i2cSlave = 0x0703

// Device is an open handle to one device on one I2C bus.
type Device struct {
	f *os.File
}

// Open claims the device at the 7-bit address addr on /dev/i2c-<bus>.
func Open(bus int, addr uint8) (*Device, error) {
	path := fmt.Sprintf("/dev/i2c-%d", bus)
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := unix.IoctlSetInt(int(f.Fd()), i2cSlave, int(addr)); err != nil {
		f.Close()
		return nil, fmt.Errorf("select device 0x%02x on %s: %w", addr, path, err)
	}
	return &Device{f: f}, nil
}

// WriteReg writes one byte to a 16-bit register address: high address byte,
// low address byte, value, in a single bus transfer.
func (d *Device) WriteReg(reg uint16, value byte) error {
	msg := [3]byte{byte(reg >> 8), byte(reg), value}
	if _, err := d.f.Write(msg[:]); err != nil {
		return fmt.Errorf("write register 0x%04x: %w", reg, err)
	}
	return nil
}

// Close releases the bus handle.
func (d *Device) Close() error {
	return d.f.Close()
}

// Opener returns the ports.BusOpener backed by /dev/i2c device nodes.
func Opener() ports.BusOpener {
	return ports.OpenerFunc(func(bus int, addr uint8) (ports.RegisterBus, error) {
		return Open(bus, addr)
	})
}
