package fs

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"github.com/bft-labs/projdump/internal/domain"
	"github.com/bft-labs/projdump/internal/ports"
	"github.com/bft-labs/projdump/pkg/document"
)

// LockSuffix is appended to the output path to name its lock file.
const LockSuffix = ".lock"

// Document is the output document of one run. It is created (truncated) by
// CreateDocument, written sequentially and released by Close.
type Document struct {
	path string
	file *os.File
	buf  *bufio.Writer
	lock *flock.Flock
}

// LockPath returns the lock file path guarding the document at path.
func LockPath(path string) string {
	return path + LockSuffix
}

// CreateDocument takes the lock for path and creates or truncates the file.
// It returns domain.ErrOutputLocked if another run holds the lock.
func CreateDocument(path string) (*Document, error) {
	lock := flock.New(LockPath(path), flock.SetPermissions(0o644))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrOutputLocked)
	}

	f, err := os.Create(path)
	if err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("create output: %w", err)
	}

	return &Document{
		path: path,
		file: f,
		buf:  bufio.NewWriter(f),
		lock: lock,
	}, nil
}

// WriteSection appends one section.
func (d *Document) WriteSection(s domain.Section) (int64, error) {
	return document.WriteSection(d.buf, s.Path, s.Content)
}

// Close flushes and closes the file, then releases and removes the lock file.
func (d *Document) Close() error {
	var errs []error
	if err := d.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush %s: %w", d.path, err))
	}
	if err := d.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close %s: %w", d.path, err))
	}
	releaseLock(d.lock)
	return errors.Join(errs...)
}

func releaseLock(lock *flock.Flock) {
	_ = lock.Unlock()
	_ = os.Remove(lock.Path())
}

var _ ports.SectionWriter = (*Document)(nil)
