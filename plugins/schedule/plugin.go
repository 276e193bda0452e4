// Package schedule resends the last request on a cron schedule.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bft-labs/linecast/pkg/linecast"
	"github.com/bft-labs/linecast/pkg/log"
)

// Plugin implements scheduled resends.
type Plugin struct {
	mu sync.Mutex

	spec     string
	location *time.Location
	parser   cron.Parser

	host    linecast.Host
	logger  linecast.Logger
	c       *cron.Cron
	entryID cron.EntryID
}

// Config holds configuration options for the schedule plugin.
type Config struct {
	// Spec is a cron expression with optional seconds field, or a descriptor
	// such as "@every 30s" or "@hourly".
	Spec string

	// Location is the time zone of Spec. Default: time.Local
	Location *time.Location
}

// New creates a new schedule plugin with the given configuration.
func New(cfg Config) *Plugin {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Plugin{
		spec:     cfg.Spec,
		location: loc,
		parser:   cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "schedule"
}

// Initialize validates the schedule and starts the cron runner.
func (p *Plugin) Initialize(ctx context.Context, cfg linecast.PluginConfig) error {
	if _, err := p.parser.Parse(p.spec); err != nil {
		return fmt.Errorf("%w: schedule %q: %v", linecast.ErrInvalidConfig, p.spec, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.host = cfg.Host
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}

	p.c = cron.New(cron.WithParser(p.parser), cron.WithLocation(p.location))
	id, err := p.c.AddFunc(p.spec, p.resend)
	if err != nil {
		return fmt.Errorf("%w: schedule %q: %v", linecast.ErrInvalidConfig, p.spec, err)
	}
	p.entryID = id
	p.c.Start()

	p.logger.Info("schedule plugin initialized",
		log.String("spec", p.spec),
		log.String("next", p.c.Entry(id).Next.Format(time.RFC3339)))
	return nil
}

// Shutdown stops the cron runner and waits for a running resend to return.
func (p *Plugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	c := p.c
	p.mu.Unlock()

	if c == nil {
		return nil
	}
	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next scheduled resend, or the zero time before Initialize.
func (p *Plugin) Next() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.c == nil {
		return time.Time{}
	}
	return p.c.Entry(p.entryID).Next
}

func (p *Plugin) resend() {
	s, err := p.host.Resend()
	switch {
	case errors.Is(err, linecast.ErrNothingToResend):
		p.logger.Debug("schedule: nothing to resend")
	case err != nil:
		p.logger.Warn("schedule: resend failed", log.Err(err))
	default:
		p.logger.Info("schedule: resending", log.String("session", s.ID()))
	}
}

// Ensure Plugin implements linecast.Plugin.
var _ linecast.Plugin = (*Plugin)(nil)
