package filewatcher

import "github.com/bft-labs/linecast/pkg/linecast"

// WithFileWatcher returns a linecast Option that resends the selected file
// after it changes on disk.
//
// Usage:
//
//	lc, err := linecast.New(cfg,
//	    filewatcher.WithFileWatcher(filewatcher.Config{
//	        DebounceDelay: 200 * time.Millisecond,
//	    }),
//	)
func WithFileWatcher(cfg Config) linecast.Option {
	return linecast.WithPlugin(New(cfg))
}

// WithDefaultFileWatcher returns a linecast Option that enables the file
// watcher with default settings (debounce 200ms).
func WithDefaultFileWatcher() linecast.Option {
	return WithFileWatcher(DefaultConfig())
}
