package sensor

import (
	"github.com/optiknode/rg10pat/internal/domain"
	"github.com/optiknode/rg10pat/pkg/rg10"
)

// testPatternOn is the TestPatternEnable payload that switches the synthetic
// output on.
const testPatternOn = 0x01

// PairWrite is one register pair plus the two bytes to store there.
type PairWrite struct {
	Pair RegisterPair
	LSB  byte
	MSB  byte
}

// RegisterWrite is a single (register, byte) bus operation.
type RegisterWrite struct {
	Reg   uint16
	Value byte
}

// Writes flattens p into its two bus operations, low byte first. The sensor
// datasheet does not promise the pair latches atomically; this order is what
// the hardware was validated against, with the sequencer's settle delay as
// the only latching guard.
func (p PairWrite) Writes() [2]RegisterWrite {
	return [2]RegisterWrite{
		{Reg: p.Pair.LSB, Value: p.LSB},
		{Reg: p.Pair.MSB, Value: p.MSB},
	}
}

// PatternWrites builds the ordered pair writes that enable the test pattern
// and program pat into the four channel registers, in ascending register
// address order. All three samples are validated before anything is
// returned, so a transaction built from the result never stops half way on
// bad input.
func PatternWrites(m RegisterMap, codec rg10.Codec, pat domain.Pattern) ([]PairWrite, error) {
	enable := PairWrite{Pair: m.TestPatternEnable, LSB: testPatternOn, MSB: 0x00}
	channels, err := ChannelWrites(m, codec, pat)
	if err != nil {
		return nil, err
	}
	return append([]PairWrite{enable}, channels...), nil
}

// ChannelWrites builds the four channel pair writes without the enable pair,
// for re-programming a pattern that is already switched on.
func ChannelWrites(m RegisterMap, codec rg10.Codec, pat domain.Pattern) ([]PairWrite, error) {
	channels := []struct {
		pair  RegisterPair
		value int
	}{
		{m.Red, pat.R},
		{m.Green1, pat.G},
		{m.Green2, pat.G},
		{m.Blue, pat.B},
	}

	writes := make([]PairWrite, 0, len(channels))
	for _, ch := range channels {
		lsb, msb, err := codec.Pack(ch.value)
		if err != nil {
			return nil, err
		}
		writes = append(writes, PairWrite{Pair: ch.pair, LSB: lsb, MSB: msb})
	}
	return writes, nil
}
