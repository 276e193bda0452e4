// Package filewatcher resends the selected file whenever it changes on disk.
// It watches Root and its subdirectories and calls Host.Resend after the
// last request's file is written or replaced.
package filewatcher

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/linecast/pkg/linecast"
	"github.com/bft-labs/linecast/pkg/log"
)

// Plugin implements change-triggered resends.
type Plugin struct {
	mu sync.Mutex

	debounceDelay time.Duration

	root     string
	host     linecast.Host
	logger   linecast.Logger
	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	stopped  bool
}

// Config holds configuration options for the file watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after the last change before resending.
	// Editors often write a file in several steps.
	// Default: 200 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 200 * time.Millisecond,
	}
}

// New creates a new file watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}
	return &Plugin{debounceDelay: cfg.DebounceDelay}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "filewatcher"
}

// Initialize starts watching cfg.Root.
func (p *Plugin) Initialize(ctx context.Context, cfg linecast.PluginConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.root = cfg.Root
	p.host = cfg.Host
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	p.watcher = watcher
	p.mu.Unlock()

	if err := p.addTree(cfg.Root); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("file watcher plugin initialized", log.String("root", cfg.Root))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)
	return nil
}

// Shutdown stops the watcher and drops a pending resend.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.stopped = true
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	if p.watcher != nil {
		return p.watcher.Close()
	}
	return nil
}

// addTree watches dir and every directory below it.
func (p *Plugin) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := p.watcher.Add(path); err != nil {
			p.logger.Warn("file watcher: failed to watch directory",
				log.String("dir", path),
				log.Err(err))
		}
		return nil
	})
}

func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			p.handle(ctx, event)

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("file watcher: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) handle(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = p.addTree(event.Name)
			return
		}
	}
	if !p.isSelected(event.Name) {
		return
	}
	p.debounceResend(ctx)
}

// isSelected reports whether path is the file of the last request.
func (p *Plugin) isSelected(path string) bool {
	req, ok := p.host.LastRequest()
	if !ok {
		return false
	}
	selected, err := p.host.FilePath(req.File)
	if err != nil {
		return false
	}
	return filepath.Clean(path) == filepath.Clean(selected)
}

func (p *Plugin) debounceResend(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.resend()
	})
}

func (p *Plugin) resend() {
	s, err := p.host.Resend()
	switch {
	case errors.Is(err, linecast.ErrNothingToResend):
		p.logger.Debug("file watcher: nothing to resend")
	case err != nil:
		p.logger.Warn("file watcher: resend failed", log.Err(err))
	default:
		p.logger.Info("file watcher: file changed, resending", log.String("session", s.ID()))
	}
}

// Ensure Plugin implements linecast.Plugin.
var _ linecast.Plugin = (*Plugin)(nil)
