package sensor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/optiknode/rg10pat/internal/domain"
	"github.com/optiknode/rg10pat/internal/ports"
)

// DefaultSettleDelay is the pause after each register pair before the next
// pair is written, giving the sensor time to latch both bytes.
const DefaultSettleDelay = 100 * time.Millisecond

// WriteRecord is one attempted bus operation and its outcome. Records exist
// for observability only; they are never fed back into hardware.
type WriteRecord struct {
	Reg   uint16
	Value byte
	Err   error
}

// Sequencer performs ordered register-pair writes against a scoped bus
// handle. The handle is acquired once per transaction and released on every
// exit path; a mutex serializes transactions so only one holds the bus at a
// time. A failed write aborts the rest of its transaction without retry.
type Sequencer struct {
	opener ports.BusOpener
	bus    int
	addr   uint8
	settle time.Duration
	log    zerolog.Logger
	sleep  func(time.Duration)

	mu sync.Mutex
}

// SequencerOption configures optional sequencer behavior.
type SequencerOption func(*Sequencer)

// WithSettleDelay overrides the default inter-pair settle delay.
func WithSettleDelay(d time.Duration) SequencerOption {
	return func(s *Sequencer) { s.settle = d }
}

// NewSequencer returns a sequencer writing to the device at addr on the
// given bus index.
func NewSequencer(opener ports.BusOpener, bus int, addr uint8, log zerolog.Logger, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		opener: opener,
		bus:    bus,
		addr:   addr,
		settle: DefaultSettleDelay,
		log:    log,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute acquires the bus and performs the pair writes in order: low byte,
// high byte, then the settle delay. The settle delays are plain blocking
// sleeps; there is no mid-flight cancellation, so a caller that needs to
// stop must let the transaction finish and restore the driver afterwards.
//
// The returned records cover every operation attempted, including the failed
// one. On failure the error is a *domain.BusError naming the register.
func (s *Sequencer) Execute(writes []PairWrite) ([]WriteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With().
		Str("txn", uuid.NewString()).
		Int("bus", s.bus).
		Str("addr", fmt.Sprintf("0x%02x", s.addr)).
		Logger()

	bus, err := s.opener.Open(s.bus, s.addr)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %d: %w", s.bus, err)
	}
	defer func() {
		if cerr := bus.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("close bus handle")
		}
	}()

	records := make([]WriteRecord, 0, len(writes)*2)
	for _, pw := range writes {
		for _, w := range pw.Writes() {
			err := bus.WriteReg(w.Reg, w.Value)
			records = append(records, WriteRecord{Reg: w.Reg, Value: w.Value, Err: err})
			if err != nil {
				log.Error().
					Str("reg", fmt.Sprintf("0x%04x", w.Reg)).
					Err(err).
					Msg("register write failed, aborting transaction")
				return records, &domain.BusError{Reg: w.Reg, Err: err}
			}
			log.Debug().
				Str("reg", fmt.Sprintf("0x%04x", w.Reg)).
				Str("value", fmt.Sprintf("0x%02x", w.Value)).
				Msg("register write")
		}
		s.sleep(s.settle)
	}

	log.Info().Int("writes", len(records)).Msg("transaction complete")
	return records, nil
}
