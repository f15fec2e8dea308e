package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/specialistvlad/fileopen/internal/ctxlog"
)

// ErrNotRegular reports that a path does not resolve to an existing regular
// file. Missing paths, directories, dangling symlinks and special files all
// map to it.
var ErrNotRegular = errors.New("not an existing regular file")

// ErrFileChanged reports that the file opened is not the one that passed the
// regular-file check.
var ErrFileChanged = errors.New("file changed between check and open")

// OpenError is returned when a path passed the regular-file check but could
// not be opened for reading.
type OpenError struct {
	Path string
	Err  error
}

// Error implements the error interface for OpenError. The path is printed
// once even when Err is the *fs.PathError returned by os.Open.
func (e *OpenError) Error() string {
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("open %s: %v", DisplayPath(e.Path), cause)
}

// Unwrap returns the underlying OS error.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// afterCheck runs between the regular-file check and the open. Tests replace
// it through SetAfterCheckHook to simulate the file changing in between.
var afterCheck = func(path string) {}

// SetAfterCheckHook installs fn to run between the regular-file check and the
// open, and returns a function restoring the previous hook. It exists for
// tests in other packages; callers must not run in parallel with other users
// of OpenRegularFile.
func SetAfterCheckHook(fn func(path string)) (restore func()) {
	prev := afterCheck
	afterCheck = fn
	return func() { afterCheck = prev }
}

// DisplayPath renders a path for human-readable messages. Invalid UTF-8 is
// replaced rather than rejected, so the conversion never fails.
func DisplayPath(path string) string {
	return strings.ToValidUTF8(path, "\uFFFD")
}

// CheckRegularFile stats path, following symlinks, and returns its info when
// it is a regular file. Any other outcome wraps ErrNotRegular.
func CheckRegularFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRegular, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s has mode %s", ErrNotRegular, DisplayPath(path), info.Mode().Type())
	}
	return info, nil
}

// OpenRegularFile checks that path is a regular file, opens it read-only and
// releases the handle before returning. The opened descriptor must refer to
// the same regular file the check saw, otherwise an *OpenError wrapping
// ErrFileChanged is returned.
func OpenRegularFile(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	info, err := CheckRegularFile(path)
	if err != nil {
		logger.Debug("Regular file check failed.", "path", DisplayPath(path), "error", err)
		return err
	}
	logger.Debug("Regular file check passed.", "path", DisplayPath(path), "size", info.Size())

	afterCheck(path)

	f, err := os.Open(path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.Warn("Failed to release file handle.", "path", DisplayPath(path), "error", closeErr)
		}
	}()

	opened, err := f.Stat()
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	if !opened.Mode().IsRegular() || !os.SameFile(info, opened) {
		return &OpenError{Path: path, Err: ErrFileChanged}
	}

	logger.Debug("File opened and released.", "path", DisplayPath(path))
	return nil
}
