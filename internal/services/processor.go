package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/vvka-141/mqmods/internal/checksum"
	"github.com/vvka-141/mqmods/internal/files/filesystem"
	"github.com/vvka-141/mqmods/internal/files/selector"
	"github.com/vvka-141/mqmods/internal/mods"
	"github.com/vvka-141/mqmods/internal/patch"
	"github.com/vvka-141/mqmods/internal/retry"
	"github.com/vvka-141/mqmods/pkg/mqmods"
)

// backupDisplayLength is the width used for .old and final paths in status
// messages.
const backupDisplayLength = 120

// Processor implements mqmods.Runner.
// Files are processed one at a time. NOT safe for concurrent Run() calls
// against the same files.
type Processor struct {
	fs       filesystem.FileSystemProvider
	logger   mqmods.Logger
	out      io.Writer
	checksum checksum.Calculator
	renamer  *retry.Executor
	recipe   func() (*patch.Recipe, error)
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithRenameRetry sets the executor used for the renames that swap the
// patched file into place.
func WithRenameRetry(executor *retry.Executor) ProcessorOption {
	return func(p *Processor) {
		p.renamer = executor
	}
}

// WithRecipe replaces the default migration recipe.
func WithRecipe(recipe *patch.Recipe) ProcessorOption {
	return func(p *Processor) {
		p.recipe = func() (*patch.Recipe, error) { return recipe, nil }
	}
}

// WithChecksumCalculator replaces the SHA-256 calculator.
func WithChecksumCalculator(calc checksum.Calculator) ProcessorOption {
	return func(p *Processor) {
		p.checksum = calc
	}
}

// NewProcessor creates a Processor. Extraction reports are written to out;
// diagnostics go to logger.
// Panics if fsys, logger, or out is nil.
func NewProcessor(fsys filesystem.FileSystemProvider, logger mqmods.Logger, out io.Writer, opts ...ProcessorOption) *Processor {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if out == nil {
		panic("out cannot be nil")
	}

	p := &Processor{
		fs:       fsys,
		logger:   logger,
		out:      out,
		checksum: checksum.New(),
		recipe:   patch.DefaultRecipe,
		renamer: retry.NewExecutor(
			retry.NewFileLockClassifier(),
			retry.NewExponentialBackoff(3),
		),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.renamer = p.renamer.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		p.logger.Verbose("File is busy, retrying in %s (attempt %d): %v", delay, attempt+1, err)
	})
	return p
}

// Run resolves config.InputPath and processes every selected file.
//
// Returns ErrInvalidConfig, ErrInputNotFound or ErrNoMatchingFiles before any
// file is touched. Returns ErrProcessingFailed when at least one file failed;
// the RunResult still holds every file's outcome.
func (p *Processor) Run(ctx context.Context, config mqmods.RunConfig) (mqmods.RunResult, error) {
	result := mqmods.RunResult{Mode: config.Mode}

	if err := config.Validate(); err != nil {
		return result, err
	}

	files, err := selector.Resolve(p.fs, config.InputPath)
	if err != nil {
		p.reportSelectionError(err)
		return result, err
	}
	p.logger.Verbose("Selected %d file(s) for %s", len(files), config.Mode)

	var engine *patch.Engine
	if config.Mode == mqmods.ModeUpdate {
		recipe, err := p.recipe()
		if err != nil {
			return result, fmt.Errorf("failed to build update recipe: %w", err)
		}
		engine = patch.NewEngine(recipe, p.logger)
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run cancelled after %d of %d files: %w", len(result.Files), len(files), err)
		}

		var fileResult mqmods.FileResult
		if config.Mode == mqmods.ModeUpdate {
			fileResult = p.updateFile(ctx, engine, path)
		} else {
			fileResult = p.extractFile(path, mods.Options{DedupFirstSearch: config.DedupFirstSearch})
		}
		result.Files = append(result.Files, fileResult)
	}

	return result, p.reportFailures(result)
}

func (p *Processor) reportSelectionError(err error) {
	var notFound *selector.NotFoundError
	var noMatch *selector.NoMatchError

	switch {
	case errors.As(err, &notFound):
		p.logger.Warning("File not found: %s", notFound.Path)
		p.logger.Warning("Full path:      %s", notFound.FullPath)
	case errors.As(err, &noMatch):
		p.logger.Warning("No files matching %s were found in %s", noMatch.Mask, noMatch.Dir)
	default:
		p.logger.Warning("%v", err)
	}
}

func (p *Processor) reportFailures(result mqmods.RunResult) error {
	failed := result.FailedFiles()

	switch len(failed) {
	case 0:
		return nil
	case 1:
		p.logger.Warning("Error processing %s", failed[0].Path)
		return fmt.Errorf("%w: %s", mqmods.ErrProcessingFailed, failed[0].Path)
	}

	p.logger.Warning("Error processing %d files", len(failed))
	for _, f := range failed {
		p.logger.Info("  %s", mqmods.CompactPath(p.absPath(f.Path), mqmods.MaxDisplayPathLength))
	}
	return fmt.Errorf("%w: %d files", mqmods.ErrProcessingFailed, len(failed))
}

func (p *Processor) absPath(path string) string {
	abs, err := p.fs.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// extractFile prints the modification report of one file. Nothing is written
// to the file system.
func (p *Processor) extractFile(path string, opts mods.Options) mqmods.FileResult {
	p.logger.Info("Reading: %s", mqmods.CompactPath(p.absPath(path), mqmods.MaxDisplayPathLength))

	content, err := p.fs.ReadFile(path)
	if err != nil {
		return p.fail(path, mqmods.ModeExtract, fmt.Errorf("failed to read %s: %w", path, err))
	}

	pf, err := mods.Parse(content, path)
	if err != nil {
		return p.fail(path, mqmods.ModeExtract, err)
	}

	summary, err := mods.Summarize(pf, opts)
	if errors.Is(err, mods.ErrNoParameterGroups) {
		p.logger.Warning("%v", err)
		return mqmods.Failed(path, mqmods.ModeExtract, err)
	}
	if err != nil {
		return p.fail(path, mqmods.ModeExtract, err)
	}

	if err := summary.Write(p.out); err != nil {
		return p.fail(path, mqmods.ModeExtract, fmt.Errorf("failed to write report: %w", err))
	}

	for _, w := range summary.Warnings {
		p.logger.Warning("%s", w)
	}

	return mqmods.FileResult{
		Path:       path,
		Mode:       mqmods.ModeExtract,
		Success:    true,
		GroupCount: len(summary.Groups),
		Warnings:   summary.Warnings,
	}
}

// updateFile writes {path}.new with the recipe applied, then moves the
// original to {path}.old and the new file to path. An existing .old file
// keeps both the original and the .new file in place.
func (p *Processor) updateFile(ctx context.Context, engine *patch.Engine, path string) mqmods.FileResult {
	p.logger.Info("Updating: %s", mqmods.CompactPath(p.absPath(path), mqmods.MaxDisplayPathLength))

	newPath := path + mqmods.NewFileSuffix
	counts, before, after, err := p.writePatched(engine, path, newPath)
	if err != nil {
		return p.fail(path, mqmods.ModeUpdate, err)
	}

	result := mqmods.FileResult{
		Path:           path,
		Mode:           mqmods.ModeUpdate,
		Success:        true,
		Patch:          &counts,
		OutputPath:     newPath,
		ChecksumBefore: p.checksum.CalculateRaw(before),
		ChecksumAfter:  p.checksum.CalculateRaw(after),
	}

	switch {
	case result.ChecksumBefore == result.ChecksumAfter:
		p.logger.Verbose("No parameters changed in %s", filepath.Base(path))
	case p.checksum.CalculateNormalized(before) == p.checksum.CalculateNormalized(after):
		p.logger.Verbose("Only layout changed in %s", filepath.Base(path))
	default:
		p.logger.Verbose("Applied %d changes to %s", counts.Total(), filepath.Base(path))
	}

	p.logger.Info("")

	backupPath := path + mqmods.BackupFileSuffix
	if filesystem.Exists(p.fs, backupPath) {
		p.logger.Info("Created %s, but not replacing the original file since the '%s' file already exists: %s",
			filepath.Base(newPath), mqmods.BackupFileSuffix,
			mqmods.CompactPath(p.absPath(backupPath), backupDisplayLength))
		return result
	}

	if err := p.rename(ctx, path, backupPath); err != nil {
		return p.fail(path, mqmods.ModeUpdate, fmt.Errorf("failed to back up %s: %w", path, err))
	}
	if err := p.rename(ctx, newPath, path); err != nil {
		return p.fail(path, mqmods.ModeUpdate, fmt.Errorf("failed to move %s into place (original kept as %s): %w", newPath, backupPath, err))
	}

	result.OutputPath = path
	result.Replaced = true
	p.logger.Info("Updated parameters in %s", mqmods.CompactPath(p.absPath(path), backupDisplayLength))
	return result
}

// writePatched streams path through the engine into newPath and returns the
// counts plus the input and output bytes. Both files are closed on return.
func (p *Processor) writePatched(engine *patch.Engine, path, newPath string) (mqmods.PatchCounts, []byte, []byte, error) {
	in, err := p.fs.Open(path)
	if err != nil {
		return mqmods.PatchCounts{}, nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	out, err := p.fs.Create(newPath)
	if err != nil {
		return mqmods.PatchCounts{}, nil, nil, fmt.Errorf("failed to create %s: %w", newPath, err)
	}

	var before, after bytes.Buffer
	counts, applyErr := engine.Apply(io.TeeReader(in, &before), io.MultiWriter(out, &after))
	closeErr := out.Close()

	if applyErr != nil {
		return counts, nil, nil, fmt.Errorf("failed to update %s: %w", path, applyErr)
	}
	if closeErr != nil {
		return counts, nil, nil, fmt.Errorf("failed to write %s: %w", newPath, closeErr)
	}

	return counts, before.Bytes(), after.Bytes(), nil
}

func (p *Processor) rename(ctx context.Context, from, to string) error {
	return p.renamer.Execute(ctx, func(context.Context) error {
		return p.fs.Rename(from, to)
	})
}

func (p *Processor) fail(path string, mode mqmods.RunMode, err error) mqmods.FileResult {
	p.logger.Error("%v", err)
	return mqmods.Failed(path, mode, err)
}
