package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/linecast/internal/domain"
)

// Session is the handle of one run of the send loop.
// All methods are safe to call concurrently with the running loop.
type Session struct {
	id    string
	file  string
	dst   domain.Destination
	total int

	mu       sync.RWMutex
	state    domain.SessionState
	cursor   int
	started  time.Time
	finished time.Time
	err      error

	cancel context.CancelFunc
	done   chan struct{}
}

func newSession(id string, cfg domain.TransmissionConfig, cancel context.CancelFunc) *Session {
	return &Session{
		id:     id,
		file:   cfg.File,
		dst:    cfg.Destination,
		total:  cfg.Source.Len(),
		state:  domain.SessionIdle,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Cancel requests cancellation. It is a no-op once the session is terminal.
func (s *Session) Cancel() {
	s.mu.RLock()
	terminal := s.state.Terminal()
	s.mu.RUnlock()
	if !terminal {
		s.cancel()
	}
}

// Done is closed when the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session ends or ctx is done and returns the latest status.
func (s *Session) Wait(ctx context.Context) (domain.SessionStatus, error) {
	select {
	case <-s.done:
		return s.Status(), nil
	case <-ctx.Done():
		return s.Status(), ctx.Err()
	}
}

// Status returns a snapshot of the session.
func (s *Session) Status() domain.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SessionStatus{
		ID:      s.id,
		File:    s.file,
		State:   s.state,
		Cursor:  s.cursor,
		Total:   s.total,
		Elapsed: s.elapsedLocked(),
		Err:     s.err,
	}
}

// Report summarises the session for persistence.
func (s *Session) Report() domain.SessionReport {
	st := s.Status()

	s.mu.RLock()
	started, finished := s.started, s.finished
	s.mu.RUnlock()

	r := domain.SessionReport{
		ID:          st.ID,
		File:        st.File,
		Destination: s.dst.String(),
		State:       st.State.String(),
		Cursor:      st.Cursor,
		Total:       st.Total,
		ElapsedMS:   st.Elapsed.Milliseconds(),
		StartedAt:   started,
		FinishedAt:  finished,
	}
	if st.Err != nil {
		r.Error = st.Err.Error()
	}
	return r
}

func (s *Session) elapsedLocked() time.Duration {
	switch {
	case s.started.IsZero():
		return 0
	case s.finished.IsZero():
		return time.Since(s.started)
	default:
		return s.finished.Sub(s.started)
	}
}

// transition moves the session to next. It returns false, leaving the state
// untouched, when the transition is not allowed.
func (s *Session) transition(next domain.SessionState, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanTransitionTo(next) {
		return false
	}
	now := time.Now()
	if next == domain.SessionRunning {
		s.started = now
	}
	s.state = next
	if next.Terminal() {
		if s.started.IsZero() {
			s.started = now
		}
		s.finished = now
		s.err = err
	}
	return true
}

// markDone releases waiters. Called once, after the terminal transition has
// been reported.
func (s *Session) markDone() {
	close(s.done)
}

// advance moves the cursor past the record just sent and returns the elapsed
// time since start. The cursor only moves while Running.
func (s *Session) advance() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.SessionRunning {
		s.cursor++
	}
	return s.elapsedLocked()
}

func (s *Session) position() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}
