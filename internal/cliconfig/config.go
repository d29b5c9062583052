package cliconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/bft-labs/projdump/internal/app"
	"github.com/bft-labs/projdump/internal/domain"
	"github.com/bft-labs/projdump/pkg/document"
	"github.com/bft-labs/projdump/pkg/log"
)

// Config holds CLI configuration for projdump.
type Config struct {
	Root       string
	Output     string
	IgnoreDirs []string

	Watch    bool
	Debounce time.Duration
	Check    bool

	LogLevel string
	NoColor  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Root:       ".",
		Output:     document.DefaultFileName,
		IgnoreDirs: append([]string(nil), domain.DefaultIgnoreDirs...),
		Debounce:   app.DefaultDebounce,
		LogLevel:   "info",
	}
}

// Validate checks the configuration for errors.
// Every error wraps domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Root == "" {
		c.Root = "."
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("%w: root: %v", domain.ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: root %q is not a directory", domain.ErrInvalidConfig, c.Root)
	}

	if c.Output == "" {
		return fmt.Errorf("%w: output is required", domain.ErrInvalidConfig)
	}

	if c.Watch && c.Check {
		return fmt.Errorf("%w: watch and check cannot be combined", domain.ErrInvalidConfig)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive", domain.ErrInvalidConfig)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
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

// setStrings replaces a list if the new one is non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setList parses a comma-separated list, as used by environment variables.
func (s *configSetter) setList(flag, value string, dst *[]string) {
	s.setStrings(flag, domain.ParseIgnoreList(value), dst)
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
