package cliconfig

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bft-labs/linecast/internal/domain"
)

// Defaults for the send command.
const (
	DefaultPort            = domain.DefaultPort
	DefaultIntervalSeconds = 1.0
	DefaultRoot            = "."
	DefaultExtension       = ".txt"
	DefaultLogLevel        = "info"
)

// Config holds CLI configuration for linecast.
type Config struct {
	Address         string
	Port            int
	IntervalSeconds float64
	File            string

	Root      string
	Extension string
	StateDir  string

	ResendOnChange bool
	Schedule       string

	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:            DefaultPort,
		IntervalSeconds: DefaultIntervalSeconds,
		Root:            DefaultRoot,
		Extension:       DefaultExtension,
		LogLevel:        DefaultLogLevel,
	}
}

// Validate checks the settings shared by every command.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("%w: root is required", domain.ErrInvalidConfig)
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Extension[0] != '.' {
		c.Extension = "." + c.Extension
	}
	return nil
}

// ValidateSend checks the settings of the send command.
// Destination and interval errors wrap the domain sentinels so callers can
// tell them apart from missing settings.
func (c *Config) ValidateSend() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Address == "" {
		return fmt.Errorf("%w: addr is required", domain.ErrInvalidConfig)
	}
	if c.File == "" {
		return fmt.Errorf("%w: file is required", domain.ErrInvalidConfig)
	}
	if _, err := domain.NewDestination(c.Address, c.Port); err != nil {
		return err
	}
	if _, err := domain.IntervalFromSeconds(c.IntervalSeconds); err != nil {
		return err
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value from a pointer if not nil and flag not changed.
// Zero is a valid interval, so absence is expressed with nil.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("parse %s: %q is not a finite number", flag, value)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
