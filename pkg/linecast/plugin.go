package linecast

import "context"

// Plugin extends a Linecast instance with background behaviour.
// Plugins are initialized by Start in registration order and shut down by
// Stop in reverse order.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins on initialization.
type PluginConfig struct {
	Root      string
	Extension string
	Logger    Logger
	Host      Host
}

// Host is the part of Linecast that plugins drive.
type Host interface {
	// Resend repeats the last successful Send, reloading its file.
	Resend() (*Session, error)

	// LastRequest returns the last successful Send request.
	LastRequest() (Request, bool)

	// FilePath returns the file system path of a file identifier.
	FilePath(identifier string) (string, error)
}
