package app

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bft-labs/linecast/internal/domain"
	"github.com/bft-labs/linecast/internal/ports"
)

// Controller owns the datagram channel and the single active session.
//
// Starting a session cancels the running one and waits for it to end before
// the new loop sends anything, so two sessions never write to the socket at
// the same time. The wait happens outside the lock guarding the active
// session, so Active, Cancel and Shutdown stay available to callbacks running
// on the ending session.
type Controller struct {
	channel     ports.DatagramChannel
	transmitter *Transmitter
	logger      ports.Logger
	newPacer    func(time.Duration) ports.Pacer
	newID       func() string

	// startMu serialises Start. It is never taken by Active or Shutdown.
	startMu sync.Mutex

	mu     sync.Mutex
	active *Session
	closed bool
	wg     sync.WaitGroup
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithPacerFactory replaces NewPacer, mainly for tests.
func WithPacerFactory(f func(time.Duration) ports.Pacer) ControllerOption {
	return func(c *Controller) {
		c.newPacer = f
	}
}

// WithIDGenerator replaces the ULID session id generator.
func WithIDGenerator(f func() string) ControllerOption {
	return func(c *Controller) {
		c.newID = f
	}
}

// WithReportRepository saves a report of every finished session to repo.
func WithReportRepository(repo ports.ReportRepository) ControllerOption {
	return func(c *Controller) {
		c.transmitter.reports = repo
	}
}

// NewController creates a controller. The channel is opened by the first Start.
func NewController(channel ports.DatagramChannel, logger ports.Logger, observer Observer, opts ...ControllerOption) *Controller {
	c := &Controller{
		channel:     channel,
		transmitter: NewTransmitter(channel, logger, observer),
		logger:      logger,
		newPacer:    NewPacer,
		newID:       func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches a session for cfg, cancelling the active one first.
// Configuration errors are returned before anything is cancelled or sent.
// The session runs until completion, failure, Cancel, or cancellation of ctx.
func (c *Controller) Start(ctx context.Context, cfg domain.TransmissionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.startMu.Lock()
	defer c.startMu.Unlock()

	c.mu.Lock()
	closed, prev := c.closed, c.active
	c.mu.Unlock()

	if closed {
		return nil, domain.ErrAlreadyClosed
	}
	if err := c.channel.Open(); err != nil {
		return nil, err
	}

	// Waiting on Done even for a terminal session lets its end callbacks
	// finish before the next session starts.
	if prev != nil {
		running := !prev.Status().State.Terminal()
		prev.Cancel()
		<-prev.Done()
		if running {
			c.logger.Info("previous session cancelled", ports.String("session", prev.ID()))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Shutdown may have run while the previous session was ending.
	if c.closed {
		return nil, domain.ErrAlreadyClosed
	}

	runCtx, cancel := context.WithCancel(ctx)
	s := newSession(c.newID(), cfg, cancel)
	pacer := c.newPacer(cfg.Interval)
	c.active = s

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		c.transmitter.Run(runCtx, s, cfg, pacer)
	}()

	return s, nil
}

// Active returns the most recently started session, or nil.
func (c *Controller) Active() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Cancel cancels the active session, if any.
func (c *Controller) Cancel() {
	if s := c.Active(); s != nil {
		s.Cancel()
	}
}

// Shutdown cancels the active session, waits up to timeout for it to end and
// closes the channel. Later calls are no-ops.
func (c *Controller) Shutdown(timeout time.Duration) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.active != nil {
		c.active.Cancel()
	}
	c.mu.Unlock()

	err := waitWithTimeout(&c.wg, timeout)
	if err != nil {
		c.logger.Warn("shutdown timeout, closing socket under running session",
			ports.Duration("timeout", timeout),
		)
	}

	if cerr := c.channel.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
