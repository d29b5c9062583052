package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations so both TOML and
// YAML files stay readable.
type FileConfig struct {
	Root       string   `toml:"root" yaml:"root"`
	Output     string   `toml:"output" yaml:"output"`
	IgnoreDirs []string `toml:"ignore_dirs" yaml:"ignore_dirs"`
	Watch      *bool    `toml:"watch" yaml:"watch"`
	Debounce   string   `toml:"debounce" yaml:"debounce"`
	Check      *bool    `toml:"check" yaml:"check"`
	LogLevel   string   `toml:"log_level" yaml:"log_level"`
	NoColor    *bool    `toml:"no_color" yaml:"no_color"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are decoded as YAML, anything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse toml %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.projdump/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".projdump", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("root", fc.Root, &cfg.Root)
	s.setString("output", fc.Output, &cfg.Output)
	s.setStrings("ignore", fc.IgnoreDirs, &cfg.IgnoreDirs)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("check", fc.Check, &cfg.Check)
	s.setBool("no-color", fc.NoColor, &cfg.NoColor)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
