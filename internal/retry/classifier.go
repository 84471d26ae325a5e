package retry

import (
	"errors"
	"io/fs"
	"strings"
	"syscall"
)

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// ErrFileBusy marks an error as a transient file lock. Wrap it to force a retry.
var ErrFileBusy = errors.New("file is busy")

// FileLockClassifier treats sharing violations and busy files as transient.
// Missing files and permission errors are fatal.
type FileLockClassifier struct{}

// NewFileLockClassifier creates a new file lock classifier.
func NewFileLockClassifier() *FileLockClassifier {
	return &FileLockClassifier{}
}

// Windows reports sharing and lock violations only through the message text
// once the error has crossed os.Rename.
var lockMessages = []string{
	"being used by another process",
	"another process has locked",
	"resource busy",
	"text file busy",
}

// IsTransient determines if an error is temporary and retryable.
func (c *FileLockClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return false
	}
	if errors.Is(err, ErrFileBusy) || errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.ETXTBSY) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range lockMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
