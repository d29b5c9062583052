package projdump

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bft-labs/projdump/internal/adapters/fs"
	"github.com/bft-labs/projdump/internal/app"
	"github.com/bft-labs/projdump/internal/domain"
	"github.com/bft-labs/projdump/pkg/document"
)

// Stats describes the outcome of one dump run.
type Stats = domain.Stats

// Errors returned by Dumper, for use with errors.Is.
var (
	ErrInvalidConfig = domain.ErrInvalidConfig
	ErrOutputLocked  = domain.ErrOutputLocked
	ErrDrift         = domain.ErrDrift
)

// Config holds the configuration of a Dumper.
type Config struct {
	// Root is the directory to walk. Default: ".".
	Root string
	// Output is the document path, resolved against the working directory.
	// Default: "project_contents.md".
	Output string
	// IgnoreDirs are directory names never descended into. A nil slice
	// selects node_modules, .git and __pycache__; an empty non-nil slice
	// ignores nothing.
	IgnoreDirs []string
	// Debounce is the quiet period Watch waits for after a change.
	Debounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	c := Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills unset fields with default values.
func (c *Config) SetDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Output == "" {
		c.Output = document.DefaultFileName
	}
	if c.IgnoreDirs == nil {
		c.IgnoreDirs = append([]string{}, domain.DefaultIgnoreDirs...)
	}
	if c.Debounce <= 0 {
		c.Debounce = app.DefaultDebounce
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("%w: root: %v", ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: root %q is not a directory", ErrInvalidConfig, c.Root)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is required", ErrInvalidConfig)
	}
	return nil
}

// Dumper gathers the text files of one tree into one document.
// A Dumper is not safe for concurrent use; runs are meant to be sequential.
type Dumper struct {
	config Config
	opts   options
	output string
	ignore domain.IgnoreSet
	walker *fs.Walker
	core   *app.Dumper
}

// New creates a Dumper for cfg. Unset fields take their defaults.
func New(cfg Config, opts ...Option) (*Dumper, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("resolve output: %w", err)
	}

	ignore := domain.NewIgnoreSet(cfg.IgnoreDirs...)
	walker, err := fs.NewWalker(cfg.Root, ignore, o.logger)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	core := app.NewDumper(walker, fs.NewProbe(), o.logger, output, fs.LockPath(output))

	return &Dumper{
		config: cfg,
		opts:   o,
		output: output,
		ignore: ignore,
		walker: walker,
		core:   core,
	}, nil
}

// OutputPath returns the absolute path of the output document.
func (d *Dumper) OutputPath() string {
	return d.output
}

// Root returns the absolute path of the walked directory.
func (d *Dumper) Root() string {
	return d.walker.Root()
}

// Dump writes the document to OutputPath, replacing any previous content.
// The file is held under an advisory lock for the duration of the run.
func (d *Dumper) Dump() (Stats, error) {
	stats, err := d.dump()
	if h := d.opts.eventHandler; h != nil {
		if err != nil {
			h.OnDumpError(err)
		} else {
			h.OnDumpComplete(stats)
		}
	}
	return stats, err
}

func (d *Dumper) dump() (Stats, error) {
	doc, err := fs.CreateDocument(d.output)
	if err != nil {
		return Stats{}, err
	}

	stats, runErr := d.core.Run(doc)
	closeErr := doc.Close()
	if runErr != nil {
		return stats, runErr
	}
	return stats, closeErr
}

// Render writes the document to w instead of OutputPath.
func (d *Dumper) Render(w io.Writer) (Stats, error) {
	return d.core.Run(streamWriter{w: w})
}

// Check renders the document in memory and compares it with OutputPath.
// When they differ, a line diff is written to w and the returned error
// wraps ErrDrift. A missing output file counts as drift.
func (d *Dumper) Check(w io.Writer) error {
	var fresh bytes.Buffer
	if _, err := d.Render(&fresh); err != nil {
		return err
	}

	current, err := os.ReadFile(d.output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read output: %w", err)
	}

	changed, err := document.WriteDiff(w, string(current), fresh.String())
	if err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	if changed {
		return fmt.Errorf("%s: %w", d.config.Output, ErrDrift)
	}
	return nil
}

// Watch dumps once, then regenerates the whole document after every burst of
// changes below Root. It blocks until ctx is cancelled and returns ctx.Err().
// Failed runs are retried with exponential backoff.
func (d *Dumper) Watch(ctx context.Context) error {
	w, err := app.NewWatcher(app.WatchConfig{
		Root:     d.walker.Root(),
		Ignore:   d.ignore,
		Exclude:  []string{d.output, fs.LockPath(d.output)},
		Debounce: d.config.Debounce,
	}, func() error {
		_, err := d.Dump()
		return err
	}, d.opts.logger)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// streamWriter adapts an io.Writer to the section writer port.
type streamWriter struct {
	w io.Writer
}

func (s streamWriter) WriteSection(sec domain.Section) (int64, error) {
	return document.WriteSection(s.w, sec.Path, sec.Content)
}
