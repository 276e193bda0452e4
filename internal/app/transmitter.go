package app

import (
	"context"

	"github.com/bft-labs/linecast/internal/domain"
	"github.com/bft-labs/linecast/internal/ports"
)

// Observer is notified about session progress.
// Calls are made synchronously from the send loop and must return quickly.
// A callback may call Controller.Active or Controller.Cancel but must not
// start a new session.
type Observer interface {
	OnSessionStart(status domain.SessionStatus)
	OnProgress(p domain.Progress)
	OnSessionEnd(status domain.SessionStatus)
}

// Transmitter runs the paced send loop of a session.
type Transmitter struct {
	channel  ports.DatagramChannel
	logger   ports.Logger
	observer Observer
	reports  ports.ReportRepository
}

// NewTransmitter creates a transmitter sending through channel.
// observer may be nil.
func NewTransmitter(channel ports.DatagramChannel, logger ports.Logger, observer Observer) *Transmitter {
	return &Transmitter{
		channel:  channel,
		logger:   logger,
		observer: observer,
	}
}

// Run drives s over cfg.Source until a terminal state and returns that state.
//
// Each step sends the record at the cursor, advances the cursor, reports
// progress and waits on pacer. A send error fails the whole session; the
// remaining records are not sent. Cancellation of ctx is checked before each
// send and interrupts the wait.
func (t *Transmitter) Run(ctx context.Context, s *Session, cfg domain.TransmissionConfig, pacer ports.Pacer) domain.SessionState {
	if ctx.Err() != nil {
		return t.finish(s, domain.SessionCancelled, nil)
	}
	s.transition(domain.SessionRunning, nil)

	t.logger.Info("send start",
		ports.String("session", s.ID()),
		ports.String("file", cfg.File),
		ports.String("destination", cfg.Destination.String()),
		ports.Int("records", cfg.Source.Len()),
		ports.Duration("interval", cfg.Interval),
	)
	if t.observer != nil {
		t.observer.OnSessionStart(s.Status())
	}

	total := cfg.Source.Len()
	for {
		if ctx.Err() != nil {
			return t.finish(s, domain.SessionCancelled, nil)
		}

		cursor := s.position()
		if cursor >= total {
			return t.finish(s, domain.SessionCompleted, nil)
		}

		record := cfg.Source.At(cursor)
		if err := t.channel.Send(cfg.Destination, record.Bytes()); err != nil {
			return t.finish(s, domain.SessionFailed, err)
		}

		elapsed := s.advance()
		t.logger.Debug("record sent",
			ports.String("session", s.ID()),
			ports.Int("index", cursor),
			ports.Int("bytes", len(record)),
		)
		if t.observer != nil {
			t.observer.OnProgress(domain.Progress{
				SessionID: s.ID(),
				Index:     cursor,
				Total:     total,
				Record:    record,
				Elapsed:   elapsed,
			})
		}

		if err := pacer.Wait(ctx); err != nil {
			return t.finish(s, domain.SessionCancelled, nil)
		}
	}
}

func (t *Transmitter) finish(s *Session, state domain.SessionState, err error) domain.SessionState {
	if !s.transition(state, err) {
		return s.Status().State
	}

	st := s.Status()
	fields := []ports.Field{
		ports.String("session", st.ID),
		ports.String("state", st.State.String()),
		ports.Int("sent", st.Cursor),
		ports.Int("total", st.Total),
		ports.Duration("elapsed", st.Elapsed),
	}
	if err != nil {
		t.logger.Error("send end", append(fields, ports.Err(err))...)
	} else {
		t.logger.Info("send end", fields...)
	}

	if t.reports != nil {
		if err := t.reports.Save(context.Background(), s.Report()); err != nil {
			t.logger.Warn("failed to save session report",
				ports.String("session", st.ID),
				ports.Err(err),
			)
		}
	}
	if t.observer != nil {
		t.observer.OnSessionEnd(st)
	}
	s.markDone()
	return state
}
