package filesystem

import (
	"errors"
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider is the file access used by the processor: reading
// parameter files, writing the patched copy, and swapping it into place.
//
// Missing paths are reported with errors that match fs.ErrNotExist.
type FileSystemProvider interface {
	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// ReadDir returns the direct children of a directory, sorted by name
	ReadDir(path string) ([]FileInfo, error)

	// ReadFile reads a whole file
	ReadFile(path string) ([]byte, error)

	// Open opens a file for streaming reads
	Open(path string) (io.ReadCloser, error)

	// Create creates or truncates a file for writing
	Create(path string) (io.WriteCloser, error)

	// Rename moves oldPath to newPath, replacing newPath if it is a file
	Rename(oldPath, newPath string) error

	// Abs returns the absolute form of path
	Abs(path string) (string, error)
}

// Exists reports whether path exists. Errors other than "not exist" count
// as existing so callers never overwrite something they could not inspect.
func Exists(fsys FileSystemProvider, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
