package mqmods

import (
	"errors"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := processor.Run(ctx, mqmods.RunConfig{InputPath: "MaxQuant*.xml"})
//	if errors.Is(err, mqmods.ErrNoMatchingFiles) {
//	    // Handle an empty wildcard match
//	}
var (
	// ErrInvalidConfig indicates the provided options are invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates a literal input path does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrNoMatchingFiles indicates a wildcard mask matched nothing.
	ErrNoMatchingFiles = errors.New("no matching files")

	// ErrProcessingFailed indicates at least one file could not be processed.
	ErrProcessingFailed = errors.New("processing failed")
)

// ExitCodeForError returns the process exit code for err.
// Returns ExitSuccess for nil and ExitFailure for everything else.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
