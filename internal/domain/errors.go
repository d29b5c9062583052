package domain

import "errors"

// Domain errors represent error conditions in the projdump domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrNotText is returned by the text probe when a file is not valid UTF-8
	// or cannot be opened because access is denied.
	ErrNotText = errors.New("projdump: not a text file")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("projdump: invalid configuration")

	// ErrOutputLocked is returned when another run holds the output document.
	ErrOutputLocked = errors.New("projdump: output document is locked")

	// ErrDrift is returned by check mode when the output document on disk
	// differs from what a fresh run would produce.
	ErrDrift = errors.New("projdump: output document is out of date")
)
