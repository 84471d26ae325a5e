package mqmods

import (
	"errors"
	"fmt"
	"strings"
)

// RunMode selects what happens to each input file.
type RunMode int

const (
	// ModeExtract parses the file and reports its modifications (read-only).
	ModeExtract RunMode = iota
	// ModeUpdate applies the migration recipe and swaps the patched file into place.
	ModeUpdate
)

func (m RunMode) String() string {
	switch m {
	case ModeExtract:
		return "extract"
	case ModeUpdate:
		return "update"
	default:
		return fmt.Sprintf("RunMode(%d)", int(m))
	}
}

// RunConfig contains all parameters needed for a processing run.
type RunConfig struct {
	// InputPath is a file path or a mask with * and ? in the file name
	InputPath string

	// Mode selects extraction or update
	Mode RunMode

	// DedupFirstSearch skips first-search variable mods already listed as
	// variable mods when reporting
	DedupFirstSearch bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.InputPath) == "" {
		errs = append(errs, fmt.Errorf("input path must be provided and non-empty; %q was provided: %w", c.InputPath, ErrInvalidConfig))
	}

	if c.Mode != ModeExtract && c.Mode != ModeUpdate {
		errs = append(errs, fmt.Errorf("unknown run mode %v: %w", c.Mode, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// PatchCounts tallies the recipe actions applied to one file.
type PatchCounts struct {
	Appended  int `json:"appended"`
	Deleted   int `json:"deleted"`
	Replaced  int `json:"replaced"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Warnings  int `json:"warnings"`
}

// Total returns the number of rules that changed the output.
func (c PatchCounts) Total() int {
	return c.Appended + c.Deleted + c.Replaced + c.Updated
}

// FileResult is the outcome of processing one file.
// Failures are reported through Success and Message rather than by aborting the run.
type FileResult struct {
	Path    string  `json:"path"`
	Mode    RunMode `json:"-"`
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Err     error   `json:"-"`

	// Extract mode
	GroupCount int      `json:"group_count,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`

	// Update mode
	Patch          *PatchCounts `json:"patch,omitempty"`
	OutputPath     string       `json:"output_path,omitempty"`
	Replaced       bool         `json:"replaced,omitempty"`
	ChecksumBefore string       `json:"checksum_before,omitempty"`
	ChecksumAfter  string       `json:"checksum_after,omitempty"`
}

// Failed builds an unsuccessful FileResult for path.
func Failed(path string, mode RunMode, err error) FileResult {
	return FileResult{
		Path:    path,
		Mode:    mode,
		Success: false,
		Message: err.Error(),
		Err:     err,
	}
}

// RunResult aggregates the per-file results of a run.
type RunResult struct {
	Mode  RunMode      `json:"-"`
	Files []FileResult `json:"files"`
}

// FailedFiles returns the results that did not succeed, in processing order.
func (r RunResult) FailedFiles() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if !f.Success {
			failed = append(failed, f)
		}
	}
	return failed
}

// Succeeded reports whether every file was processed successfully.
// A run with no files does not succeed.
func (r RunResult) Succeeded() bool {
	return len(r.Files) > 0 && len(r.FailedFiles()) == 0
}
