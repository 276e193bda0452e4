package domain

import "errors"

// Domain errors represent error conditions in the linecast domain.
// These errors are returned by the public API and can be checked with errors.Is.
// Callers usually receive them wrapped with additional context.
var (
	// ErrNotFound is returned when a file identifier does not resolve to a readable file.
	ErrNotFound = errors.New("linecast: not found")

	// ErrDecode is returned when file content is not valid UTF-8 text.
	ErrDecode = errors.New("linecast: content is not valid UTF-8")

	// ErrInvalidDestination is returned for an unparsable address or out-of-range port.
	ErrInvalidDestination = errors.New("linecast: invalid destination")

	// ErrInvalidInterval is returned for a negative or non-finite interval.
	ErrInvalidInterval = errors.New("linecast: invalid interval")

	// ErrSend is returned when the socket rejects a datagram locally.
	ErrSend = errors.New("linecast: send failed")

	// ErrAlreadyClosed is returned when sending on, or reopening, a closed channel.
	ErrAlreadyClosed = errors.New("linecast: channel closed")

	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("linecast: already running")

	// ErrNotRunning is returned when an operation requires a running instance.
	ErrNotRunning = errors.New("linecast: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("linecast: shutdown timeout")

	// ErrInvalidConfig is returned when host configuration validation fails.
	ErrInvalidConfig = errors.New("linecast: invalid configuration")

	// ErrNothingToResend is returned by Resend when no transmission was requested yet.
	ErrNothingToResend = errors.New("linecast: nothing to resend")
)

// IsConfigError reports whether err is one of the errors surfaced before a
// session starts.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrInvalidDestination) ||
		errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidConfig)
}
