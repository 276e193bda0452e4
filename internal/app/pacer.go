package app

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"github.com/bft-labs/linecast/internal/ports"
)

// NewPacer returns the pacer for a session with the given interval.
//
// A positive interval is enforced by a token bucket with burst 1, so records
// leave at a fixed cadence. A zero interval never sleeps but still yields the
// processor, keeping cancellation observable between records.
func NewPacer(interval time.Duration) ports.Pacer {
	if interval <= 0 {
		return yieldPacer{}
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// The bucket starts full; drain it so the first Wait lasts a full interval.
	limiter.Allow()
	return &ratePacer{limiter: limiter}
}

type ratePacer struct {
	limiter *rate.Limiter
}

// Wait sleeps until the next token is due. Unlike rate.Limiter.Wait it does
// not fail early when ctx has a deadline before that time; it returns only
// once ctx is actually done.
func (p *ratePacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := p.limiter.Reserve()
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}

type yieldPacer struct{}

func (yieldPacer) Wait(ctx context.Context) error {
	runtime.Gosched()
	return ctx.Err()
}
