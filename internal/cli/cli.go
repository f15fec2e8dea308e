package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/fileopen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string

	// Reported is set when Message has already been written to the user.
	Reported bool
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode returns the process status to exit with.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// usageCode is the status for missing or malformed arguments.
const usageCode = 2

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Exactly one positional argument, the file, is required.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("fileopen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
fileopen - Checks that a file exists and can be opened for reading.

Usage:
  fileopen [options] <file>

Arguments:
  file
    Video file path

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a settings file (.hcl, .yaml, .yml) or a directory of .hcl files.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'. (default \"text\")")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. (default \"warn\")")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		// The flag set has already printed the error and the usage text.
		return nil, false, &ExitError{Code: usageCode, Message: err.Error(), Reported: true}
	}
	slog.Debug("Arguments parsed successfully.", "positional", flagSet.NArg())

	switch {
	case flagSet.NArg() == 0 || flagSet.Arg(0) == "":
		flagSet.Usage()
		return nil, false, &ExitError{Code: usageCode, Message: "missing required argument: file"}
	case flagSet.NArg() > 1:
		flagSet.Usage()
		return nil, false, &ExitError{Code: usageCode, Message: fmt.Sprintf("expected exactly one file argument, got %d", flagSet.NArg())}
	}

	config, err := app.NewConfig(app.Config{
		FilePath:   flagSet.Arg(0),
		ConfigPath: *configFlag,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: usageCode, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
