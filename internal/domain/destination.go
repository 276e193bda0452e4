package domain

import (
	"fmt"
	"net/netip"
	"strconv"
)

// DefaultPort is the destination port used when none is configured.
const DefaultPort = 12345

// Destination is a validated IPv4 address and UDP port.
type Destination struct {
	addrPort netip.AddrPort
}

// NewDestination validates address and port.
// The address must be an IPv4 literal; the port must be in 1..65535.
func NewDestination(address string, port int) (Destination, error) {
	addr, err := netip.ParseAddr(address)
	if err != nil {
		return Destination{}, fmt.Errorf("%w: address %q: %v", ErrInvalidDestination, address, err)
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return Destination{}, fmt.Errorf("%w: address %q is not IPv4", ErrInvalidDestination, address)
	}
	if port < 1 || port > 65535 {
		return Destination{}, fmt.Errorf("%w: port %d out of range", ErrInvalidDestination, port)
	}
	return Destination{addrPort: netip.AddrPortFrom(addr, uint16(port))}, nil
}

// ParseDestination parses "host:port". A missing port is not accepted here;
// use NewDestination with DefaultPort for bare addresses.
func ParseDestination(s string) (Destination, error) {
	ap, err := netip.ParseAddrPort(s)
	if err != nil {
		return Destination{}, fmt.Errorf("%w: %q: %v", ErrInvalidDestination, s, err)
	}
	return NewDestination(ap.Addr().String(), int(ap.Port()))
}

// AddrPort returns the destination as a netip.AddrPort.
func (d Destination) AddrPort() netip.AddrPort {
	return d.addrPort
}

// IsZero reports whether d was never validated.
func (d Destination) IsZero() bool {
	return !d.addrPort.IsValid()
}

// Port returns the destination port.
func (d Destination) Port() int {
	return int(d.addrPort.Port())
}

// String returns "address:port".
func (d Destination) String() string {
	if d.IsZero() {
		return ""
	}
	return d.addrPort.Addr().String() + ":" + strconv.Itoa(d.Port())
}
