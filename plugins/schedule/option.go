package schedule

import "github.com/bft-labs/linecast/pkg/linecast"

// WithSchedule returns a linecast Option that resends the last request on
// the given schedule. An invalid Spec makes Start fail with ErrInvalidConfig.
//
// Usage:
//
//	lc, err := linecast.New(cfg,
//	    schedule.WithSchedule(schedule.Config{Spec: "*/5 * * * *"}),
//	)
func WithSchedule(cfg Config) linecast.Option {
	return linecast.WithPlugin(New(cfg))
}
