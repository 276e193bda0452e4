package linecast_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bft-labs/linecast/pkg/linecast"
)

// trackingPlugin records initialization and shutdown order.
type trackingPlugin struct {
	name      string
	order     *[]string
	mu        *sync.Mutex
	initError error
	host      linecast.Host
}

func (p *trackingPlugin) Name() string { return p.name }

func (p *trackingPlugin) Initialize(ctx context.Context, cfg linecast.PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initError != nil {
		return p.initError
	}
	*p.order = append(*p.order, "init:"+p.name)
	p.host = cfg.Host
	return nil
}

func (p *trackingPlugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	*p.order = append(*p.order, "shutdown:"+p.name)
	return nil
}

func TestPlugins_Order(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	first := &trackingPlugin{name: "first", order: &order, mu: &mu}
	second := &trackingPlugin{name: "second", order: &order, mu: &mu}

	lc, err := linecast.New(linecast.Config{Root: t.TempDir()},
		linecast.WithPlugin(first),
		linecast.WithPlugin(second),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if first.host == nil {
		t.Fatal("plugin did not receive a Host")
	}
	if _, err := first.host.Resend(); !errors.Is(err, linecast.ErrNothingToResend) {
		t.Errorf("Host.Resend() error = %v, want ErrNothingToResend", err)
	}
	if err := lc.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	want := []string{"init:first", "init:second", "shutdown:second", "shutdown:first"}
	mu.Lock()
	defer mu.Unlock()
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPlugins_InitFailure(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	ok := &trackingPlugin{name: "ok", order: &order, mu: &mu}
	bad := &trackingPlugin{name: "bad", order: &order, mu: &mu, initError: errors.New("boom")}

	lc, err := linecast.New(linecast.Config{Root: t.TempDir()},
		linecast.WithPlugin(ok),
		linecast.WithPlugin(bad),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := lc.Start(context.Background()); err == nil {
		t.Fatal("Start() error = nil, want plugin failure")
	}
	if lc.State() != linecast.StateClosed {
		t.Errorf("State() = %v, want Closed", lc.State())
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"init:ok", "shutdown:ok"}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestFilePath(t *testing.T) {
	lc, err := linecast.New(linecast.Config{Root: "/srv/lines"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := lc.FilePath("../etc/passwd"); !errors.Is(err, linecast.ErrNotFound) {
		t.Errorf("FilePath() error = %v, want ErrNotFound", err)
	}
	if _, err := lc.FilePath("a/b.txt"); err != nil {
		t.Errorf("FilePath() error = %v", err)
	}
}
