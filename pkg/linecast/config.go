package linecast

import (
	"fmt"
	"time"

	"github.com/bft-labs/linecast/internal/adapters/fs"
	"github.com/bft-labs/linecast/internal/domain"
)

// DefaultPort is the destination port used when a Request leaves Port at zero.
const DefaultPort = domain.DefaultPort

// DefaultExtension is the extension of selectable files.
const DefaultExtension = fs.DefaultExtension

// Config holds the configuration of a Linecast instance.
type Config struct {
	// Root is the directory that file identifiers are resolved against.
	Root string

	// Extension filters Files(). Default: ".txt"
	Extension string

	// StateDir receives status.json after each session. Empty disables it.
	StateDir string

	// ShutdownTimeout bounds how long Stop waits for the active session.
	// Default: 10 seconds
	ShutdownTimeout time.Duration
}

// SetDefaults fills zero fields with default values.
func (c *Config) SetDefaults() {
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root directory is required", domain.ErrInvalidConfig)
	}
	return nil
}

// Request describes one transmission.
type Request struct {
	// Address is the destination IPv4 address.
	Address string

	// Port is the destination port. Zero means DefaultPort.
	Port int

	// Interval is the pause after each record. Zero sends back-to-back.
	Interval time.Duration

	// File is the identifier of the file under Config.Root.
	File string
}

// IntervalFromSeconds converts fractional seconds into a Request interval.
// Negative, NaN and infinite values return ErrInvalidInterval.
func IntervalFromSeconds(seconds float64) (time.Duration, error) {
	return domain.IntervalFromSeconds(seconds)
}

// resolve validates r and loads its file.
func (l *Linecast) resolve(r Request) (domain.TransmissionConfig, error) {
	port := r.Port
	if port == 0 {
		port = DefaultPort
	}
	dst, err := domain.NewDestination(r.Address, port)
	if err != nil {
		return domain.TransmissionConfig{}, err
	}
	if r.Interval < 0 {
		return domain.TransmissionConfig{}, fmt.Errorf("%w: %v is negative", domain.ErrInvalidInterval, r.Interval)
	}

	source, err := l.source.Load(r.File)
	if err != nil {
		return domain.TransmissionConfig{}, err
	}

	return domain.TransmissionConfig{
		Destination: dst,
		Interval:    r.Interval,
		Source:      source,
		File:        r.File,
	}, nil
}
