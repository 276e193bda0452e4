package linecast

import (
	"context"
	"fmt"
	"sync"

	"github.com/bft-labs/linecast/internal/adapters/fs"
	logAdapter "github.com/bft-labs/linecast/internal/adapters/log"
	"github.com/bft-labs/linecast/internal/adapters/udp"
	"github.com/bft-labs/linecast/internal/app"
	"github.com/bft-labs/linecast/internal/domain"
	"github.com/bft-labs/linecast/internal/ports"
	"github.com/bft-labs/linecast/pkg/log"
)

// Linecast sends text files line by line over UDP.
// Use New() to create an instance, Start() to bring it up and Send() to
// begin a transmission.
type Linecast struct {
	config     Config
	lifecycle  *app.Lifecycle
	controller *app.Controller
	source     LineSource
	paths      pathResolver
	reports    *fs.ReportFileRepository
	logger     Logger
	plugins    []Plugin

	mu   sync.RWMutex
	ctx  context.Context
	last *Request
}

type pathResolver interface {
	Path(identifier string) (string, error)
}

// New creates a new Linecast instance with the given configuration.
// The instance is created in StateStopped; call Start() before Send().
func New(cfg Config, opts ...Option) (*Linecast, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	fsSource := fs.NewLineSource(cfg.Root, cfg.Extension)
	source := o.source
	if source == nil {
		source = fsSource
	}

	channel := o.channel
	if channel == nil {
		channel = udp.NewChannel(logger)
	}

	obs := &observer{handler: o.eventHandler}
	if o.progress != nil {
		obs.progress = logAdapter.NewProgressWriter(o.progress)
	}
	var ctrlOpts []app.ControllerOption
	var reports *fs.ReportFileRepository
	if cfg.StateDir != "" {
		reports = fs.NewReportFileRepository(cfg.StateDir)
		ctrlOpts = append(ctrlOpts, app.WithReportRepository(reports))
	}

	return &Linecast{
		config:     cfg,
		lifecycle:  app.NewLifecycle(logger, obs),
		controller: app.NewController(channel, logger, obs, ctrlOpts...),
		reports:    reports,
		source:     source,
		paths:      fsSource,
		logger:     logger,
		plugins:    o.plugins,
	}, nil
}

// Start brings the instance up and initializes plugins.
// The provided context bounds every session started by Send.
func (l *Linecast) Start(ctx context.Context) error {
	l.mu.Lock()
	if !l.lifecycle.CanStart() {
		l.mu.Unlock()
		return domain.ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	l.ctx = runCtx
	l.lifecycle.SetCancel(cancel)

	if err := l.lifecycle.TransitionTo(app.StateRunning, "Start() called"); err != nil {
		l.mu.Unlock()
		cancel()
		return err
	}
	l.mu.Unlock()

	// Plugins may call back into the host while initializing.

	pluginCfg := PluginConfig{
		Root:      l.config.Root,
		Extension: l.config.Extension,
		Logger:    l.logger,
		Host:      l,
	}
	for i, p := range l.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			l.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			l.shutdownPlugins(l.plugins[:i])
			cancel()
			_ = l.lifecycle.TransitionTo(app.StateStopping, "plugin init failed: "+p.Name())
			_ = l.controller.Shutdown(l.config.ShutdownTimeout)
			_ = l.lifecycle.TransitionTo(app.StateClosed, "plugin init failed")
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		l.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}
	return nil
}

// Send validates req, loads its file and starts a session for it.
// A session that is still running is cancelled first.
// Configuration errors (ErrInvalidDestination, ErrInvalidInterval,
// ErrNotFound, ErrDecode) are returned before anything is sent.
func (l *Linecast) Send(req Request) (*Session, error) {
	l.mu.RLock()
	ctx := l.ctx
	l.mu.RUnlock()

	if l.lifecycle.State() != app.StateRunning {
		return nil, domain.ErrNotRunning
	}

	cfg, err := l.resolve(req)
	if err != nil {
		return nil, err
	}

	s, err := l.controller.Start(ctx, cfg)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	r := req
	l.last = &r
	l.mu.Unlock()
	return s, nil
}

// Resend repeats the last successful Send with a freshly loaded file.
func (l *Linecast) Resend() (*Session, error) {
	req, ok := l.LastRequest()
	if !ok {
		return nil, domain.ErrNothingToResend
	}
	return l.Send(req)
}

// LastRequest returns the last successful Send request.
func (l *Linecast) LastRequest() (Request, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.last == nil {
		return Request{}, false
	}
	return *l.last, true
}

// FilePath returns the file system path of a file identifier.
func (l *Linecast) FilePath(identifier string) (string, error) {
	return l.paths.Path(identifier)
}

// Cancel cancels the active session, if any.
func (l *Linecast) Cancel() {
	l.controller.Cancel()
}

// Session returns the most recently started session, or nil.
func (l *Linecast) Session() *Session {
	return l.controller.Active()
}

// Status returns a snapshot of the most recent session.
// The boolean is false if no session was started yet.
func (l *Linecast) Status() (SessionStatus, bool) {
	s := l.controller.Active()
	if s == nil {
		return SessionStatus{}, false
	}
	return s.Status(), true
}

// Files lists the selectable file identifiers under Config.Root.
func (l *Linecast) Files() ([]string, error) {
	return l.source.List()
}

// LastReport returns the report of the last finished session persisted in
// Config.StateDir. It returns ErrInvalidConfig if StateDir is not set and an
// empty report if no session has finished yet.
func (l *Linecast) LastReport(ctx context.Context) (SessionReport, error) {
	if l.reports == nil {
		return SessionReport{}, fmt.Errorf("%w: state directory is not set", domain.ErrInvalidConfig)
	}
	return l.reports.Load(ctx)
}

// State returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (l *Linecast) State() State {
	return l.lifecycle.State()
}

// Stop shuts plugins down, cancels the active session and closes the socket.
// An instance cannot be restarted after Stop.
// Returns ErrShutdownTimeout if the session did not end within
// Config.ShutdownTimeout; the socket is closed regardless.
func (l *Linecast) Stop() error {
	l.mu.Lock()
	if !l.lifecycle.CanStop() {
		l.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := l.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		l.mu.Unlock()
		return err
	}
	l.mu.Unlock()

	// Plugins go first so they cannot start sessions during shutdown.
	l.shutdownPlugins(l.plugins)

	err := l.controller.Shutdown(l.config.ShutdownTimeout)
	l.lifecycle.Cancel()

	reason := "graceful shutdown"
	if err != nil {
		reason = err.Error()
	}
	_ = l.lifecycle.TransitionTo(app.StateClosed, reason)
	return err
}

func (l *Linecast) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			l.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			continue
		}
		l.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
	}
}

// observer adapts EventHandler, the progress writer and the report file to
// the internal observer interfaces.
type observer struct {
	handler  EventHandler
	progress *logAdapter.ProgressWriter
}

func (o *observer) OnStateChange(previous, current app.State, reason string) {
	if o.handler == nil {
		return
	}
	o.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}

func (o *observer) OnSessionStart(st domain.SessionStatus) {
	if o.handler == nil {
		return
	}
	o.handler.OnSessionStart(SessionStartEvent{
		SessionID: st.ID,
		File:      st.File,
		Total:     st.Total,
	})
}

func (o *observer) OnProgress(p domain.Progress) {
	if o.progress != nil {
		o.progress.OnProgress(p)
	}
	if o.handler != nil {
		o.handler.OnRecordSent(RecordSentEvent{
			SessionID: p.SessionID,
			Index:     p.Index,
			Total:     p.Total,
			Record:    string(p.Record),
			Elapsed:   p.Elapsed,
		})
	}
}

func (o *observer) OnSessionEnd(st domain.SessionStatus) {
	if o.handler != nil {
		o.handler.OnSessionEnd(SessionEndEvent{Status: st})
	}
}
