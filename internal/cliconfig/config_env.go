package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (PROJDUMP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("root", os.Getenv("PROJDUMP_ROOT"), &cfg.Root)
	s.setString("output", os.Getenv("PROJDUMP_OUTPUT"), &cfg.Output)
	s.setList("ignore", os.Getenv("PROJDUMP_IGNORE_DIRS"), &cfg.IgnoreDirs)
	s.setString("log-level", os.Getenv("PROJDUMP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("debounce", os.Getenv("PROJDUMP_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("PROJDUMP_WATCH"), &cfg.Watch)
	s.setBoolFromString("check", os.Getenv("PROJDUMP_CHECK"), &cfg.Check)
	s.setBoolFromString("no-color", os.Getenv("PROJDUMP_NO_COLOR"), &cfg.NoColor)

	return nil
}
