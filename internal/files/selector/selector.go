package selector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/mqmods/internal/files/filesystem"
	"github.com/vvka-141/mqmods/pkg/mqmods"
)

// ErrWildcardInDirectory indicates a mask with * or ? outside the file name.
var ErrWildcardInDirectory = errors.New("wildcards are only supported in the file name")

// NotFoundError reports a literal input path that is not an existing file.
type NotFoundError struct {
	Path     string
	FullPath string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s (full path: %s)", e.Path, e.FullPath)
}

func (e *NotFoundError) Unwrap() error { return mqmods.ErrInputNotFound }

// NoMatchError reports a mask that matched no file.
type NoMatchError struct {
	Mask string
	Dir  string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no files matching %s were found in %s", e.Mask, e.Dir)
}

func (e *NoMatchError) Unwrap() error { return mqmods.ErrNoMatchingFiles }

// maskEscaper quotes the characters doublestar treats as pattern syntax so
// that only * and ? act as wildcards.
var maskEscaper = strings.NewReplacer(
	`\`, `\\`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

// HasWildcard reports whether input contains * or ?.
func HasWildcard(input string) bool {
	return strings.ContainsAny(input, "*?")
}

// Resolve returns the files named by input, in name order for masks.
//
// Returns *NotFoundError for a literal path that is missing or a directory,
// *NoMatchError when a mask matches nothing, and ErrWildcardInDirectory when
// the directory part of a mask contains a wildcard.
func Resolve(fsys filesystem.FileSystemProvider, input string) ([]string, error) {
	if !HasWildcard(input) {
		return resolveLiteral(fsys, input)
	}
	return resolveMask(fsys, input)
}

func resolveLiteral(fsys filesystem.FileSystemProvider, input string) ([]string, error) {
	info, err := fsys.Stat(input)
	if err == nil && !info.IsDir() {
		return []string{input}, nil
	}

	fullPath, absErr := fsys.Abs(input)
	if absErr != nil {
		fullPath = input
	}
	return nil, &NotFoundError{Path: input, FullPath: fullPath}
}

func resolveMask(fsys filesystem.FileSystemProvider, input string) ([]string, error) {
	dir, mask := filepath.Split(input)
	if HasWildcard(dir) {
		return nil, fmt.Errorf("%w: %s", ErrWildcardInDirectory, input)
	}
	if dir == "" {
		dir = "."
	}

	pattern := maskEscaper.Replace(strings.ToLower(mask))
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid file mask %q: %w", mask, doublestar.ErrBadPattern)
	}

	fullDir, err := fsys.Abs(dir)
	if err != nil {
		fullDir = dir
	}

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list %s: %w", fullDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, strings.ToLower(entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("invalid file mask %q: %w", mask, err)
		}
		if ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	if len(files) == 0 {
		return nil, &NoMatchError{Mask: mask, Dir: fullDir}
	}
	return files, nil
}
