package domain

import "time"

// Section is a single entry of the output document.
type Section struct {
	// Path is relative to the dump root and always uses forward slashes.
	Path string
	// Content is the raw file content, before trailing newlines are trimmed.
	Content []byte
}

// Stats describes the outcome of one dump run.
type Stats struct {
	RunID          string
	Written        int
	SkippedBinary  int
	SkippedErrored int
	BytesWritten   int64
	Duration       time.Duration
}

// Skipped returns the total number of candidates left out of the document.
func (s Stats) Skipped() int {
	return s.SkippedBinary + s.SkippedErrored
}
