// Package udp implements the datagram channel over an IPv4 UDP socket.
package udp

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"golang.org/x/net/ipv4"

	"github.com/bft-labs/linecast/internal/domain"
	"github.com/bft-labs/linecast/internal/ports"
	"github.com/bft-labs/linecast/pkg/log"
)

// DefaultTTL is the IP time-to-live set on the outbound socket.
const DefaultTTL = 255

// Channel implements ports.DatagramChannel with one unconnected UDP socket.
// The socket is created by the first Open and released by the first Close;
// a closed Channel cannot be reopened.
type Channel struct {
	mu     sync.Mutex
	conn   *net.UDPConn
	closed bool
	ttl    int
	logger ports.Logger
}

// NewChannel creates a channel that is not yet open.
// A nil logger discards messages.
func NewChannel(logger ports.Logger) *Channel {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Channel{ttl: DefaultTTL, logger: logger}
}

// Open creates the socket if needed.
func (c *Channel) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrAlreadyClosed
	}
	if c.conn != nil {
		return nil
	}

	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return fmt.Errorf("open udp socket: %w", err)
	}
	if err := ipv4.NewPacketConn(conn).SetTTL(c.ttl); err != nil {
		conn.Close()
		return fmt.Errorf("set ttl %d: %w", c.ttl, err)
	}

	c.conn = conn
	c.logger.Info("socket open",
		ports.String("local", conn.LocalAddr().String()),
		ports.Int("ttl", c.ttl),
	)
	return nil
}

// Send writes payload as one datagram to dst.
func (c *Channel) Send(dst domain.Destination, payload []byte) error {
	c.mu.Lock()
	conn := c.conn
	closed := c.closed
	c.mu.Unlock()

	if closed || conn == nil {
		return domain.ErrAlreadyClosed
	}
	if dst.IsZero() {
		return fmt.Errorf("%w: %w", domain.ErrSend, domain.ErrInvalidDestination)
	}

	if _, err := conn.WriteToUDPAddrPort(payload, dst.AddrPort()); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return domain.ErrAlreadyClosed
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrSend, dst, err)
	}
	return nil
}

// Close releases the socket. Only the first call has an effect.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	c.logger.Info("socket close")
	return err
}

// LocalAddr returns the bound local address, or nil if not open.
func (c *Channel) LocalAddr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.LocalAddr()
}
