package ports

import "context"

// Pacer suspends the send loop between two records.
type Pacer interface {
	// Wait blocks until the next record may be sent.
	// It returns a non-nil error as soon as ctx is cancelled.
	Wait(ctx context.Context) error
}
