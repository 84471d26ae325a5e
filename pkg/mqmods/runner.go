package mqmods

import "context"

// Runner processes the parameter files selected by a RunConfig.
type Runner interface {
	// Run processes every selected file and returns one FileResult per file.
	// Per-file failures do not stop the run; they are aggregated into
	// ErrProcessingFailed after the last file.
	Run(ctx context.Context, config RunConfig) (RunResult, error)
}
