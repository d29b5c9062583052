package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/bft-labs/projdump/internal/domain"
	"github.com/bft-labs/projdump/internal/ports"
	"github.com/bft-labs/projdump/pkg/log"
)

// Walker implements ports.Walker on top of filepath.WalkDir.
type Walker struct {
	root   string
	ignore domain.IgnoreSet
	logger log.Logger
}

// NewWalker creates a Walker rooted at root. The root is made absolute and
// symlinks in it are resolved, so a root reached through a link is walked
// like the directory it points to.
func NewWalker(root string, ignore domain.IgnoreSet, logger log.Logger) (*Walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Walker{root: abs, ignore: ignore, logger: logger}, nil
}

// Root returns the absolute, symlink-free walk root.
func (w *Walker) Root() string {
	return w.root
}

// Walk visits files depth-first in lexical order. Directories named in the
// ignore set are pruned before descent; the root itself is never pruned.
// Unreadable directories are skipped.
func (w *Walker) Walk(fn func(ports.Candidate) error) error {
	return filepath.WalkDir(w.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			w.logger.Debug("skipping unreadable entry", log.String("path", path), log.Err(err))
			if d != nil && d.IsDir() && path != w.root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != w.root && w.ignore.Contains(d.Name()) {
				w.logger.Debug("pruning ignored directory", log.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegularFile(path, d) {
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		return fn(ports.Candidate{Path: path, RelPath: filepath.ToSlash(rel)})
	})
}

// isRegularFile reports whether d is a regular file or a symlink resolving to one.
// Links to directories are not followed.
func isRegularFile(path string, d iofs.DirEntry) bool {
	mode := d.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&iofs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

var _ ports.Walker = (*Walker)(nil)
