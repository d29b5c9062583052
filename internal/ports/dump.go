package ports

import "github.com/bft-labs/projdump/internal/domain"

// Candidate is a file discovered during traversal.
type Candidate struct {
	// Path is the absolute, cleaned file path.
	Path string
	// RelPath is relative to the walk root, slash separated.
	RelPath string
}

// Walker enumerates file candidates depth-first, pruning ignored directories
// before descending into them.
type Walker interface {
	// Walk calls fn for every file candidate in traversal order.
	// An error returned by fn stops the walk and is returned unchanged.
	Walk(fn func(Candidate) error) error
}

// Prober reads a candidate and decides whether it is text.
type Prober interface {
	// Probe returns the file content when it is text.
	// It returns an error wrapping domain.ErrNotText for binary or
	// permission-denied files, and any other error for I/O failures.
	Probe(path string) ([]byte, error)
}

// SectionWriter appends sections to the output document.
type SectionWriter interface {
	WriteSection(s domain.Section) (int64, error)
}
