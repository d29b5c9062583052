package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/projdump/internal/domain"
	"github.com/bft-labs/projdump/internal/ports"
	"github.com/bft-labs/projdump/pkg/log"
)

// Dumper runs one traversal and appends every text file it finds to a
// SectionWriter. A run is strictly sequential.
type Dumper struct {
	walker  ports.Walker
	prober  ports.Prober
	logger  log.Logger
	exclude map[string]struct{}
}

// NewDumper creates a Dumper. Paths in exclude (typically the output
// document and its lock file) never become sections; they are compared after
// normalize, so spellings through symlinked directories still match.
func NewDumper(walker ports.Walker, prober ports.Prober, logger log.Logger, exclude ...string) *Dumper {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	ex := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		ex[normalize(p)] = struct{}{}
	}
	return &Dumper{
		walker:  walker,
		prober:  prober,
		logger:  logger,
		exclude: ex,
	}
}

// Run walks the tree and writes a section for every text file in traversal
// order. Binary and unreadable files are skipped; only a failure of the
// walk itself or of w aborts the run.
func (d *Dumper) Run(w ports.SectionWriter) (domain.Stats, error) {
	stats := domain.Stats{RunID: uuid.NewString()}
	logger := log.With(d.logger, log.String("run_id", stats.RunID))
	start := time.Now()

	err := d.walker.Walk(func(c ports.Candidate) error {
		if d.excluded(c.Path) {
			return nil
		}

		content, err := d.prober.Probe(c.Path)
		if err != nil {
			if errors.Is(err, domain.ErrNotText) {
				stats.SkippedBinary++
				logger.Debug("skipping non-text file", log.String("path", c.RelPath))
				return nil
			}
			stats.SkippedErrored++
			logger.Warn("skipping unreadable file", log.String("path", c.RelPath), log.Err(err))
			return nil
		}

		n, err := w.WriteSection(domain.Section{Path: c.RelPath, Content: content})
		stats.BytesWritten += n
		if err != nil {
			return fmt.Errorf("write section %s: %w", c.RelPath, err)
		}
		stats.Written++
		return nil
	})
	stats.Duration = time.Since(start)

	if err != nil {
		logger.Error("dump failed", log.Err(err))
		return stats, err
	}

	logger.Info("dump complete",
		log.Int("written", stats.Written),
		log.Int("skipped_binary", stats.SkippedBinary),
		log.Int("skipped_errored", stats.SkippedErrored),
		log.Int64("bytes", stats.BytesWritten),
		log.Duration("duration", stats.Duration),
	)
	return stats, nil
}

func (d *Dumper) excluded(path string) bool {
	_, ok := d.exclude[normalize(path)]
	return ok
}

// normalize returns p as an absolute path with symlinks resolved. Paths that
// do not exist (yet), like an output document before its first run or a
// removed file, are resolved through their longest existing ancestor.
func normalize(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	dir, rest := abs, ""
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}
