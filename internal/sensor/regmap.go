// Package sensor programs the camera's synthetic test-pattern generator: the
// validated register map, the ordered register-write sequencer and the
// lifecycle controller that wraps a hardware session with detach/restore
// guarantees.
package sensor

import "fmt"

// DefaultAddr is the sensor's 7-bit device address on the I2C bus.
const DefaultAddr uint8 = 0x10

// RegisterPair is the two consecutive register addresses holding one sample:
// the low 8 bits at LSB, the remaining payload bits in the low bits of MSB.
type RegisterPair struct {
	LSB uint16
	MSB uint16
}

func pair(lsb uint16) RegisterPair {
	return RegisterPair{LSB: lsb, MSB: lsb + 1}
}

// RegisterMap names the sensor's test-pattern registers.
type RegisterMap struct {
	TestPatternEnable RegisterPair
	Red               RegisterPair
	Green1            RegisterPair
	Green2            RegisterPair
	Blue              RegisterPair
}

// Registers is the sensor's test-pattern register table. It is built and
// validated once at process start and never mutated.
var Registers = mustRegisterMap(RegisterMap{
	TestPatternEnable: pair(0x0600),
	Red:               pair(0x0602),
	Green1:            pair(0x0604),
	Green2:            pair(0x0606),
	Blue:              pair(0x0608),
})

// mustRegisterMap panics on an invalid table. A broken table is a programming
// error; the process must not start with one.
func mustRegisterMap(m RegisterMap) RegisterMap {
	if err := m.validate(); err != nil {
		panic(err)
	}
	return m
}

// channelPairs returns the four channel registers in bus address order.
func (m RegisterMap) channelPairs() []RegisterPair {
	return []RegisterPair{m.Red, m.Green1, m.Green2, m.Blue}
}

func (m RegisterMap) validate() error {
	pairs := append([]RegisterPair{m.TestPatternEnable}, m.channelPairs()...)
	for _, p := range pairs {
		if p.MSB != p.LSB+1 {
			return fmt.Errorf("sensor: register pair 0x%04x/0x%04x is not contiguous", p.LSB, p.MSB)
		}
	}
	return nil
}
