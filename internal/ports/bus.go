package ports

// RegisterBus is a scoped handle to one device on one bus. Each write
// addresses a single 8-bit register value. The holder must close the handle
// when its transaction ends, on every exit path.
type RegisterBus interface {
	// WriteReg writes one byte to the given register address.
	WriteReg(reg uint16, value byte) error

	// Close releases the handle.
	Close() error
}

// BusOpener acquires a RegisterBus for the device at addr on the given bus
// index. The bus is an exclusive resource: one transaction holds a handle at
// a time.
type BusOpener interface {
	Open(bus int, addr uint8) (RegisterBus, error)
}

// OpenerFunc adapts a function to the BusOpener interface.
type OpenerFunc func(bus int, addr uint8) (RegisterBus, error)

// Open implements BusOpener.
func (f OpenerFunc) Open(bus int, addr uint8) (RegisterBus, error) {
	return f(bus, addr)
}
