package sink

import (
	"fmt"
	"os"

	"github.com/quantmind-br/blitzpack/internal/domain"
	"github.com/quantmind-br/blitzpack/internal/utils"
)

// Ensure Filesystem implements domain.Sink
var _ domain.Sink = (*Filesystem)(nil)

// Filesystem writes sanitized entries under an output root, creating parent
// directories as needed and overwriting existing files without warning.
// There is no rollback: a failure partway through leaves earlier files on
// disk. Callers needing atomicity should stage to a temp dir and rename.
type Filesystem struct {
	root   string
	count  int
	closed bool
}

// NewFilesystem creates a filesystem sink rooted at dir, creating the root
// and any intermediate directories if absent
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		return nil, fmt.Errorf("output root must not be empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output root %s: %w", root, err)
	}
	return &Filesystem{root: root}, nil
}

// Add writes one entry below the root as UTF-8 text
func (f *Filesystem) Add(entry domain.SanitizedEntry) error {
	if f.closed {
		return domain.ErrSinkClosed
	}

	dest := utils.DestPath(f.root, entry.Path)

	if err := utils.EnsureDir(dest); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", entry.Path, err)
	}
	if err := os.WriteFile(dest, []byte(entry.Contents), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", entry.Path, err)
	}

	f.count++
	return nil
}

// Close marks the sink finished
func (f *Filesystem) Close() error {
	f.closed = true
	return nil
}

// Count returns the number of files written
func (f *Filesystem) Count() int {
	return f.count
}

// Root returns the output root directory
func (f *Filesystem) Root() string {
	return f.root
}
