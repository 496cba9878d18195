package obsmatrix

import (
	"github.com/tsawler/obsmatrix/layout"
)

// RunOptions holds the tunables of a run.
type RunOptions struct {
	// Classification
	concurrency int
	threshold   float64 // 0 leaves predicted labels unchanged

	// Segmentation
	terminators string

	// Working copies; empty means os.TempDir()
	tempDir string
}

// defaultOptions returns the default run options.
func defaultOptions() RunOptions {
	return RunOptions{
		concurrency: 4,
		threshold:   0,
		terminators: layout.DefaultTerminators,
		tempDir:     "",
	}
}

// clone returns a copy of RunOptions.
func (o RunOptions) clone() RunOptions {
	return RunOptions{
		concurrency: o.concurrency,
		threshold:   o.threshold,
		terminators: o.terminators,
		tempDir:     o.tempDir,
	}
}
