package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (LINECAST_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("addr", os.Getenv("LINECAST_ADDR"), &cfg.Address)
	s.setString("file", os.Getenv("LINECAST_FILE"), &cfg.File)
	s.setString("root", os.Getenv("LINECAST_ROOT"), &cfg.Root)
	s.setString("ext", os.Getenv("LINECAST_EXT"), &cfg.Extension)
	s.setString("state-dir", os.Getenv("LINECAST_STATE_DIR"), &cfg.StateDir)
	s.setString("schedule", os.Getenv("LINECAST_SCHEDULE"), &cfg.Schedule)
	s.setString("log-level", os.Getenv("LINECAST_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("port", os.Getenv("LINECAST_PORT"), &cfg.Port); err != nil {
		return err
	}
	if err := s.setFloatFromString("interval", os.Getenv("LINECAST_INTERVAL"), &cfg.IntervalSeconds); err != nil {
		return err
	}

	s.setBoolFromString("resend-on-change", os.Getenv("LINECAST_RESEND_ON_CHANGE"), &cfg.ResendOnChange)

	return nil
}
