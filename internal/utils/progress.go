package utils

import "github.com/schollz/progressbar/v3"

// Standard progress bar descriptions
const (
	DescFetching = "Fetching"
	DescWriting  = "Writing"
	DescPacking  = "Packing"
)

// NewProgressBar creates a consistently styled progress bar.
//
// total is the number of items; use -1 for unknown totals (spinner mode).
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		// Unknown total: use spinner mode
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}
