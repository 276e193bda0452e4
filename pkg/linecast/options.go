package linecast

import (
	"io"

	"github.com/bft-labs/linecast/internal/app"
	"github.com/bft-labs/linecast/internal/domain"
	"github.com/bft-labs/linecast/internal/ports"
	"github.com/bft-labs/linecast/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// Session is the handle of one transmission.
type Session = app.Session

// SessionStatus is a snapshot of a session.
type SessionStatus = domain.SessionStatus

// SessionReport is the persisted summary of a finished session.
type SessionReport = domain.SessionReport

// SessionState is the state of a session.
type SessionState = domain.SessionState

// Session states.
const (
	SessionIdle      = domain.SessionIdle
	SessionRunning   = domain.SessionRunning
	SessionCompleted = domain.SessionCompleted
	SessionCancelled = domain.SessionCancelled
	SessionFailed    = domain.SessionFailed
)

// State is the lifecycle state of a Linecast instance.
type State = app.State

// Lifecycle states.
const (
	StateStopped  = app.StateStopped
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateClosed   = app.StateClosed
)

// DatagramChannel sends datagrams; see WithChannel.
type DatagramChannel = ports.DatagramChannel

// LineSource loads and lists files; see WithLineSource.
type LineSource = ports.LineSource

// Errors returned by the public API. Check them with errors.Is.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrDecode             = domain.ErrDecode
	ErrInvalidDestination = domain.ErrInvalidDestination
	ErrInvalidInterval    = domain.ErrInvalidInterval
	ErrInvalidConfig      = domain.ErrInvalidConfig
	ErrSend               = domain.ErrSend
	ErrAlreadyClosed      = domain.ErrAlreadyClosed
	ErrAlreadyRunning     = domain.ErrAlreadyRunning
	ErrNotRunning         = domain.ErrNotRunning
	ErrShutdownTimeout    = domain.ErrShutdownTimeout
	ErrNothingToResend    = domain.ErrNothingToResend
)

// IsConfigError reports whether err was caused by invalid input to Send,
// as opposed to a failure while sending.
func IsConfigError(err error) bool {
	return domain.IsConfigError(err)
}

// Option configures optional behavior of Linecast.
type Option func(*options)

// options holds the optional configuration for a Linecast instance.
type options struct {
	logger       Logger
	eventHandler EventHandler
	progress     io.Writer
	channel      DatagramChannel
	source       LineSource
	plugins      []Plugin
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for linecast events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithProgressWriter writes one "[elapsed] record" line per sent record to w.
func WithProgressWriter(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithChannel replaces the UDP socket channel.
func WithChannel(ch DatagramChannel) Option {
	return func(o *options) {
		o.channel = ch
	}
}

// WithLineSource replaces the file system line source.
func WithLineSource(src LineSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithPlugin registers a plugin to be initialized when Linecast starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
