package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/fileopen/internal/app"
	"github.com/specialistvlad/fileopen/internal/cli"
	"github.com/specialistvlad/fileopen/internal/fsutil"
)

// main is the entrypoint for the fileopen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
// Usage text and logs go to errW; the not-found message goes to outW.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	ctx := context.Background()
	fileApp, err := app.NewApp(ctx, outW, errW, appConfig)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	return fileApp.Run(ctx)
}

// report writes the diagnostic for err to errW and returns the exit status.
func report(errW io.Writer, err error) int {
	var openErr *fsutil.OpenError
	if errors.As(err, &openErr) {
		fmt.Fprintf(errW, "Unable to open file: %v\n", openErr)
		return 1
	}

	var notFound *app.NotFoundError
	if errors.As(err, &notFound) {
		// The message is already on stdout.
		return notFound.ExitCode()
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" && !exitErr.Reported {
			fmt.Fprintln(errW, exitErr.Message)
		}
		return exitErr.ExitCode()
	}

	fmt.Fprintln(errW, err)
	return 1
}
