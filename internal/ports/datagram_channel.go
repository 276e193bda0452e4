package ports

import "github.com/bft-labs/linecast/internal/domain"

// DatagramChannel owns one outbound datagram socket.
// Delivery, ordering and deduplication are not guaranteed.
type DatagramChannel interface {
	// Open creates the socket. Calling Open on an open channel is a no-op.
	// Returns domain.ErrAlreadyClosed once the channel has been closed.
	Open() error

	// Send writes payload as a single datagram to dst without retry.
	// Returns domain.ErrAlreadyClosed if the channel is not open,
	// or an error wrapping domain.ErrSend for other local failures.
	Send(dst domain.Destination, payload []byte) error

	// Close releases the socket. Subsequent calls are no-ops.
	Close() error
}
