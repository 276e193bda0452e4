// Package linecast sends a text file over UDP, one line per datagram.
//
// Example usage:
//
//	status, err := linecast.Run(ctx,
//	    linecast.Config{Root: "/srv/lines"},
//	    linecast.Request{Address: "127.0.0.1", Port: 12345, Interval: time.Second, File: "a.txt"},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(status.State)
//
// For long-lived use, with resends and plugins, see pkg/linecast.
package linecast

import (
	"context"

	"github.com/bft-labs/linecast/pkg/linecast"
)

// Config holds the configuration of a linecast instance.
type Config = linecast.Config

// Request describes one transmission.
type Request = linecast.Request

// Option configures optional behavior; see pkg/linecast.
type Option = linecast.Option

// SessionStatus is a snapshot of a transmission session.
type SessionStatus = linecast.SessionStatus

// DefaultPort is the destination port used when Request.Port is zero.
const DefaultPort = linecast.DefaultPort

// Run sends req once and blocks until the session ends or ctx is cancelled.
// Configuration errors are returned before anything is sent. The returned
// status is that of the finished session; a Failed session is not an error.
func Run(ctx context.Context, cfg Config, req Request, opts ...Option) (SessionStatus, error) {
	lc, err := linecast.New(cfg, opts...)
	if err != nil {
		return SessionStatus{}, err
	}
	if err := lc.Start(ctx); err != nil {
		return SessionStatus{}, err
	}

	s, err := lc.Send(req)
	if err != nil {
		_ = lc.Stop()
		return SessionStatus{}, err
	}

	select {
	case <-s.Done():
	case <-ctx.Done():
	}
	stopErr := lc.Stop()
	return s.Status(), stopErr
}
