package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/linecast/pkg/linecast"
)

type countingHost struct {
	mu      sync.Mutex
	resends int
	hit     chan struct{}
}

func (h *countingHost) Resend() (*linecast.Session, error) {
	h.mu.Lock()
	h.resends++
	h.mu.Unlock()
	select {
	case h.hit <- struct{}{}:
	default:
	}
	return nil, linecast.ErrNothingToResend
}

func (h *countingHost) LastRequest() (linecast.Request, bool) { return linecast.Request{}, false }

func (h *countingHost) FilePath(identifier string) (string, error) { return identifier, nil }

func TestPlugin_InvalidSpec(t *testing.T) {
	tests := []string{"", "not a cron", "61 * * * *", "@every nope"}
	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			p := New(Config{Spec: spec})
			err := p.Initialize(context.Background(), linecast.PluginConfig{Host: &countingHost{}})
			if !errors.Is(err, linecast.ErrInvalidConfig) {
				t.Errorf("Initialize(%q) error = %v, want ErrInvalidConfig", spec, err)
			}
		})
	}
}

func TestPlugin_Fires(t *testing.T) {
	host := &countingHost{hit: make(chan struct{}, 8)}
	p := New(Config{Spec: "@every 1s"})
	if err := p.Initialize(context.Background(), linecast.PluginConfig{Host: host}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer p.Shutdown(context.Background())

	select {
	case <-host.hit:
	case <-time.After(3 * time.Second):
		t.Fatal("schedule did not fire")
	}
}

func TestPlugin_Next(t *testing.T) {
	p := New(Config{Spec: "0 0 * * *", Location: time.UTC})
	if !p.Next().IsZero() {
		t.Error("Next() before Initialize is not zero")
	}
	if err := p.Initialize(context.Background(), linecast.PluginConfig{Host: &countingHost{}}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer p.Shutdown(context.Background())

	next := p.Next().In(time.UTC)
	if next.Hour() != 0 || next.Minute() != 0 || !next.After(time.Now()) {
		t.Errorf("Next() = %v, want a future midnight", next)
	}
}

func TestPlugin_ShutdownWithoutInitialize(t *testing.T) {
	p := New(Config{Spec: "@hourly"})
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
