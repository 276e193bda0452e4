package log

// Version information for the log module, checked by pkg/linecast at construction.
const (
	Version              = "1.1.0"
	MinCompatibleVersion = "1.0.0"
)
