package projdump

import (
	"github.com/bft-labs/projdump/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// EventHandler receives notifications about finished runs of Dump.
// Methods are called synchronously from the goroutine running the dump.
type EventHandler interface {
	OnDumpComplete(stats Stats)
	OnDumpError(err error)
}

// Option configures optional behavior of Dumper.
type Option func(*options)

// options holds the optional configuration for a Dumper instance.
type options struct {
	logger       Logger
	eventHandler EventHandler
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler sets a handler notified after every Dump, including the
// ones triggered by Watch.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
