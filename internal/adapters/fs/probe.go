package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"unicode/utf8"

	"github.com/bft-labs/projdump/internal/domain"
	"github.com/bft-labs/projdump/internal/ports"
)

// Probe implements ports.Prober by reading the whole file and checking that
// it is valid UTF-8. The read that classifies the file also captures it.
type Probe struct{}

// NewProbe creates a UTF-8 text probe.
func NewProbe() *Probe {
	return &Probe{}
}

// Probe returns the content of path when it decodes as UTF-8.
func (p *Probe) Probe(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrPermission) {
			return nil, fmt.Errorf("%w: %w", domain.ErrNotText, err)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrNotText, path)
	}
	return data, nil
}

var _ ports.Prober = (*Probe)(nil)
