package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/fileopen/internal/fsutil"
)

// NotFoundError is returned by Run when the target is not an existing regular
// file and a non-zero not-found exit status is configured. The user-facing
// message has already been written by the time it is returned.
type NotFoundError struct {
	Path string
	Code int
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %s doesn't exist", fsutil.DisplayPath(e.Path))
}

// ExitCode returns the process status to exit with.
func (e *NotFoundError) ExitCode() int {
	return e.Code
}

// Run checks that the configured file is an existing regular file, then
// opens and immediately releases it.
//
// A missing or non-regular target prints a single line to the output writer
// and is not an error unless a not-found exit status is configured. Open
// failures are returned as *fsutil.OpenError.
func (a *App) Run(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	path := a.config.FilePath
	a.logger.Debug("App.Run method started.", "path", fsutil.DisplayPath(path))

	err := fsutil.OpenRegularFile(ctx, path)
	switch {
	case err == nil:
		a.logger.Info("File opened successfully.", "path", fsutil.DisplayPath(path))
		return nil

	case errors.Is(err, fsutil.ErrNotRegular):
		if _, werr := fmt.Fprintf(a.outW, "File '%s' doesn't exists\n", fsutil.DisplayPath(path)); werr != nil {
			return fmt.Errorf("failed to write message: %w", werr)
		}
		if code := a.settings.NotFoundCode(); code != 0 {
			return &NotFoundError{Path: path, Code: code}
		}
		return nil

	default:
		a.logger.Debug("Open failed after a successful check.", "path", fsutil.DisplayPath(path), "error", err)
		return err
	}
}
