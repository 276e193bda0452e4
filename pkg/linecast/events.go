package linecast

import (
	"time"

	"github.com/bft-labs/linecast/internal/domain"
)

// EventHandler receives notifications about linecast operations.
// Session events are called synchronously from the send loop; implementations
// should return quickly. Status, Session and Cancel are safe to call from a
// callback; Send and Resend are not, as they wait for the calling session to end.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnSessionStart(event SessionStartEvent)
	OnRecordSent(event RecordSentEvent)
	OnSessionEnd(event SessionEndEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to handle
// only the events you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent)   {}
func (BaseEventHandler) OnSessionStart(SessionStartEvent) {}
func (BaseEventHandler) OnRecordSent(RecordSentEvent)     {}
func (BaseEventHandler) OnSessionEnd(SessionEndEvent)     {}

// StateChangeEvent reports a host lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// SessionStartEvent reports a session entering Running.
type SessionStartEvent struct {
	SessionID string
	File      string
	Total     int
}

// RecordSentEvent reports one datagram handed to the socket.
type RecordSentEvent struct {
	SessionID string
	Index     int
	Total     int
	Record    string
	Elapsed   time.Duration
}

// Line renders the event as "[elapsed_seconds] record_text".
func (e RecordSentEvent) Line() string {
	return domain.FormatProgress(domain.Progress{Record: domain.Record(e.Record), Elapsed: e.Elapsed})
}

// SessionEndEvent reports a session reaching a terminal state.
type SessionEndEvent struct {
	Status SessionStatus
}
