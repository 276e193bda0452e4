package filewatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/linecast/pkg/linecast"
)

// fakeHost counts resends of a fixed request.
type fakeHost struct {
	root string

	mu      sync.Mutex
	request *linecast.Request
	resends int
	hit     chan struct{}
}

func newFakeHost(root string) *fakeHost {
	return &fakeHost{root: root, hit: make(chan struct{}, 16)}
}

func (h *fakeHost) Resend() (*linecast.Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.request == nil {
		return nil, linecast.ErrNothingToResend
	}
	h.resends++
	h.hit <- struct{}{}
	return nil, linecast.ErrAlreadyClosed
}

func (h *fakeHost) LastRequest() (linecast.Request, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.request == nil {
		return linecast.Request{}, false
	}
	return *h.request, true
}

func (h *fakeHost) FilePath(identifier string) (string, error) {
	return filepath.Join(h.root, filepath.FromSlash(identifier)), nil
}

func (h *fakeHost) choose(file string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.request = &linecast.Request{Address: "127.0.0.1", File: file}
}

func (h *fakeHost) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resends
}

func startPlugin(t *testing.T, host *fakeHost) *Plugin {
	t.Helper()
	p := New(Config{DebounceDelay: 20 * time.Millisecond})
	err := p.Initialize(context.Background(), linecast.PluginConfig{
		Root:      host.root,
		Extension: ".txt",
		Host:      host,
	})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	return p
}

func waitHit(t *testing.T, host *fakeHost) {
	t.Helper()
	select {
	case <-host.hit:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for resend")
	}
}

func TestPlugin_ResendsSelectedFile(t *testing.T) {
	root := t.TempDir()
	selected := filepath.Join(root, "lines.txt")
	if err := os.WriteFile(selected, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	host := newFakeHost(root)
	host.choose("lines.txt")
	startPlugin(t, host)

	if err := os.WriteFile(selected, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitHit(t, host)
}

func TestPlugin_IgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	host := newFakeHost(root)
	host.choose("lines.txt")
	startPlugin(t, host)

	if err := os.WriteFile(filepath.Join(root, "other.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if n := host.count(); n != 0 {
		t.Errorf("resends = %d, want 0", n)
	}
}

func TestPlugin_NoSelection(t *testing.T) {
	root := t.TempDir()
	host := newFakeHost(root)
	startPlugin(t, host)

	if err := os.WriteFile(filepath.Join(root, "lines.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if n := host.count(); n != 0 {
		t.Errorf("resends = %d, want 0", n)
	}
}

func TestPlugin_Subdirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	host := newFakeHost(root)
	host.choose("sub/lines.txt")
	startPlugin(t, host)

	if err := os.WriteFile(filepath.Join(sub, "lines.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitHit(t, host)
}

func TestPlugin_Debounce(t *testing.T) {
	root := t.TempDir()
	selected := filepath.Join(root, "lines.txt")

	host := newFakeHost(root)
	host.choose("lines.txt")
	p := New(Config{DebounceDelay: 300 * time.Millisecond})
	if err := p.Initialize(context.Background(), linecast.PluginConfig{Root: root, Host: host}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer p.Shutdown(context.Background())

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(selected, []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	waitHit(t, host)
	time.Sleep(400 * time.Millisecond)

	if n := host.count(); n != 1 {
		t.Errorf("resends = %d, want 1", n)
	}
}

func TestPlugin_MissingRoot(t *testing.T) {
	p := New(DefaultConfig())
	err := p.Initialize(context.Background(), linecast.PluginConfig{
		Root: filepath.Join(t.TempDir(), "missing"),
		Host: newFakeHost(""),
	})
	if err == nil {
		t.Fatal("Initialize() error = nil, want error for missing root")
	}
}

func TestPlugin_ShutdownWithoutInitialize(t *testing.T) {
	p := New(Config{})
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if p.Name() != "filewatcher" {
		t.Errorf("Name() = %q", p.Name())
	}
}
