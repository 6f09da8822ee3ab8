package sanitize

import "github.com/quantmind-br/blitzpack/internal/domain"

// Budget enforces per-file and cumulative byte limits across one invocation.
// A zero or negative limit disables that ceiling. Budgets are not safe for
// concurrent use; each invocation owns a fresh one.
type Budget struct {
	maxFileSize  int64
	maxTotalSize int64
	total        int64
}

// NewBudget creates a fresh transfer budget
func NewBudget(maxFileSize, maxTotalSize int64) *Budget {
	return &Budget{
		maxFileSize:  maxFileSize,
		maxTotalSize: maxTotalSize,
	}
}

// Accept checks one candidate file of the given byte size against both
// ceilings and adds it to the running total. Exceeding either ceiling fails
// the entire operation; these are hard aborts, not skips.
func (b *Budget) Accept(path string, size int64) error {
	if b.maxFileSize > 0 && size > b.maxFileSize {
		return &domain.FileTooLargeError{
			Path:  path,
			Size:  size,
			Limit: b.maxFileSize,
		}
	}

	b.total += size
	if b.maxTotalSize > 0 && b.total > b.maxTotalSize {
		return &domain.TotalSizeExceededError{
			Total: b.total,
			Limit: b.maxTotalSize,
		}
	}

	return nil
}

// Total returns the bytes accepted so far
func (b *Budget) Total() int64 {
	return b.total
}
