package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "go.yaml.in/yaml/v3"
)

// FileConfig mirrors Config for config files. Pointers distinguish an
// explicit zero from an absent key.
type FileConfig struct {
	Address         string   `toml:"addr" yaml:"addr"`
	Port            int      `toml:"port" yaml:"port"`
	IntervalSeconds *float64 `toml:"interval" yaml:"interval"`
	File            string   `toml:"file" yaml:"file"`
	Root            string   `toml:"root" yaml:"root"`
	Extension       string   `toml:"ext" yaml:"ext"`
	StateDir        string   `toml:"state_dir" yaml:"state_dir"`
	ResendOnChange  *bool    `toml:"resend_on_change" yaml:"resend_on_change"`
	Schedule        string   `toml:"schedule" yaml:"schedule"`
	LogLevel        string   `toml:"log_level" yaml:"log_level"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.linecast/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".linecast", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("addr", fc.Address, &cfg.Address)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setFloat("interval", fc.IntervalSeconds, &cfg.IntervalSeconds)
	s.setString("file", fc.File, &cfg.File)
	s.setString("root", fc.Root, &cfg.Root)
	s.setString("ext", fc.Extension, &cfg.Extension)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setBool("resend-on-change", fc.ResendOnChange, &cfg.ResendOnChange)
	s.setString("schedule", fc.Schedule, &cfg.Schedule)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
