package domain

import (
	"fmt"
	"time"
)

// SessionState is the state of one transmission session.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionRunning
	SessionCompleted
	SessionCancelled
	SessionFailed
)

// String returns a human-readable representation of the state.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "Idle"
	case SessionRunning:
		return "Running"
	case SessionCompleted:
		return "Completed"
	case SessionCancelled:
		return "Cancelled"
	case SessionFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s SessionState) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled || s == SessionFailed
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	switch s {
	case SessionIdle:
		return next == SessionRunning || next == SessionCancelled
	case SessionRunning:
		return next.Terminal()
	default:
		return false
	}
}

// SessionStatus is a point-in-time snapshot of a session.
type SessionStatus struct {
	ID      string
	File    string
	State   SessionState
	Cursor  int
	Total   int
	Elapsed time.Duration

	// Err is the send error of a Failed session.
	Err error
}

// Progress is emitted after each successfully sent record.
type Progress struct {
	SessionID string
	Index     int
	Total     int
	Record    Record
	Elapsed   time.Duration
}

// FormatProgress renders p as "[elapsed_seconds] record_text" with
// millisecond precision.
func FormatProgress(p Progress) string {
	return fmt.Sprintf("[%.3f] %s", p.Elapsed.Seconds(), string(p.Record))
}

// SessionReport is the persisted summary of a finished session.
type SessionReport struct {
	ID          string    `json:"id"`
	File        string    `json:"file"`
	Destination string    `json:"destination"`
	State       string    `json:"state"`
	Cursor      int       `json:"cursor"`
	Total       int       `json:"total"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}
