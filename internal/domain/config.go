package domain

import (
	"fmt"
	"math"
	"time"
)

// TransmissionConfig holds everything one session needs.
type TransmissionConfig struct {
	// Destination receives one datagram per record.
	Destination Destination

	// Interval is the pause after each record. Zero sends back-to-back.
	Interval time.Duration

	// Source is the loaded content of File.
	Source RecordSequence

	// File is the identifier Source was loaded from. Informational.
	File string
}

// Validate checks the invariants of the configuration.
func (c TransmissionConfig) Validate() error {
	if c.Destination.IsZero() {
		return fmt.Errorf("%w: destination not set", ErrInvalidDestination)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: %v is negative", ErrInvalidInterval, c.Interval)
	}
	return nil
}

// IntervalFromSeconds converts fractional seconds into a duration.
func IntervalFromSeconds(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInterval, seconds)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: %v is negative", ErrInvalidInterval, seconds)
	}
	d := seconds * float64(time.Second)
	if d > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v is too large", ErrInvalidInterval, seconds)
	}
	return time.Duration(d), nil
}
