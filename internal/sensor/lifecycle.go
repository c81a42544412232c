package sensor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/optiknode/rg10pat/internal/domain"
	"github.com/optiknode/rg10pat/internal/ports"
	"github.com/optiknode/rg10pat/pkg/rg10"
)

// State is the lifecycle position of a hardware session.
type State int

const (
	StateIdle State = iota
	StateDriverDetached
	StateTestPatternEnabled
	StateStreaming
	StateDriverRestored
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDriverDetached:
		return "DriverDetached"
	case StateTestPatternEnabled:
		return "TestPatternEnabled"
	case StateStreaming:
		return "Streaming"
	case StateDriverRestored:
		return "DriverRestored"
	default:
		return "Unknown"
	}
}

// Controller walks a hardware session through driver detach, test-pattern
// programming, optional preview and driver restoration. Once the detach has
// succeeded, restoration runs exactly once no matter what happens after, so
// a session never terminates with the test pattern left enabled.
type Controller struct {
	driver  ports.DriverController
	service ports.ServiceController
	preview ports.Previewer // nil disables the preview step
	seq     *Sequencer
	codec   rg10.Codec
	regs    RegisterMap
	log     zerolog.Logger

	state State
}

// NewController returns a controller over the default register table.
func NewController(driver ports.DriverController, service ports.ServiceController, preview ports.Previewer, seq *Sequencer, codec rg10.Codec, log zerolog.Logger) *Controller {
	return &Controller{
		driver:  driver,
		service: service,
		preview: preview,
		seq:     seq,
		codec:   codec,
		regs:    Registers,
		log:     log,
		state:   StateIdle,
	}
}

// State returns the controller's current session state.
func (c *Controller) State() State { return c.state }

func (c *Controller) transition(to State, reason string) {
	c.log.Info().
		Str("from", c.state.String()).
		Str("to", to.String()).
		Str("reason", reason).
		Msg("state transition")
	c.state = to
}

// Run programs pat into the sensor and restores the driver before returning.
// A detach failure aborts with nothing mutated and no cleanup. Any failure
// after a successful detach still goes through restoration; if restoration
// itself fails, the returned error carries a *domain.RestoreError, joined
// with the earlier failure when there was one.
func (c *Controller) Run(ctx context.Context, pat domain.Pattern) error {
	return c.run(ctx, pat, nil)
}

// RunUntil is Run with live re-programming: after the pattern is enabled it
// applies each update arriving on updates until ctx is done or updates is
// closed, then restores the driver.
func (c *Controller) RunUntil(ctx context.Context, pat domain.Pattern, updates <-chan domain.Pattern) error {
	return c.run(ctx, pat, updates)
}

func (c *Controller) run(ctx context.Context, pat domain.Pattern, updates <-chan domain.Pattern) error {
	writes, err := PatternWrites(c.regs, c.codec, pat)
	if err != nil {
		return err
	}

	if err := c.detach(ctx); err != nil {
		return err
	}

	runErr := c.enable(writes)
	if runErr == nil {
		if updates != nil {
			runErr = c.applyUpdates(ctx, updates)
		} else if c.preview != nil {
			c.stream(ctx)
		}
	}

	if rerr := c.restore(ctx); rerr != nil {
		restore := &domain.RestoreError{Err: rerr}
		if runErr != nil {
			return errors.Join(runErr, restore)
		}
		return restore
	}

	if runErr != nil {
		return runErr
	}
	c.transition(StateIdle, "session closed")
	return nil
}

func (c *Controller) detach(ctx context.Context) error {
	status, err := c.driver.Detach(ctx)
	if err != nil {
		return fmt.Errorf("detach driver: %w", err)
	}
	if status == domain.AlreadyDetached {
		c.log.Info().Msg("driver already detached")
	}
	c.transition(StateDriverDetached, "driver unbound")
	return nil
}

func (c *Controller) enable(writes []PairWrite) error {
	if _, err := c.seq.Execute(writes); err != nil {
		return err
	}
	c.transition(StateTestPatternEnabled, "test pattern registers written")
	return nil
}

// stream runs the preview collaborator. Previews are best effort: a failure
// is logged and the session still proceeds to restoration.
func (c *Controller) stream(ctx context.Context) {
	c.transition(StateStreaming, "preview started")
	if err := c.preview.Run(ctx); err != nil {
		c.log.Warn().Err(err).Msg("preview failed")
	}
}

func (c *Controller) applyUpdates(ctx context.Context, updates <-chan domain.Pattern) error {
	c.transition(StateStreaming, "applying live pattern updates")
	for {
		select {
		case <-ctx.Done():
			return nil
		case pat, ok := <-updates:
			if !ok {
				return nil
			}
			writes, err := ChannelWrites(c.regs, c.codec, pat)
			if err != nil {
				c.log.Warn().Err(err).Msg("ignoring invalid pattern update")
				continue
			}
			if _, err := c.seq.Execute(writes); err != nil {
				return err
			}
			c.log.Info().
				Int("r", pat.R).Int("g", pat.G).Int("b", pat.B).
				Msg("pattern updated")
		}
	}
}

// restore rebinds the driver and restarts the dependent service. Both run
// even if the first fails. Cancellation of the session context must not skip
// restoration, so the collaborators get a context detached from it.
func (c *Controller) restore(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	if err := c.driver.Reattach(ctx); err != nil {
		errs = append(errs, fmt.Errorf("reattach driver: %w", err))
	}
	if err := c.service.Restart(ctx); err != nil {
		errs = append(errs, fmt.Errorf("restart camera service: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	c.transition(StateDriverRestored, "driver rebound and service restarted")
	return nil
}
