package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/specialistvlad/fileopen/internal/config"
	"github.com/specialistvlad/fileopen/internal/ctxlog"
	"github.com/specialistvlad/fileopen/internal/hcl"
	"github.com/specialistvlad/fileopen/internal/yamlcfg"
)

// maxExitCode keeps configured statuses clear of the shell's signal range.
const maxExitCode = 125

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings *config.Settings
}

// NewApp is the constructor for the main application. It loads the optional
// settings file, resolves logging options (command line over settings over
// defaults) and returns an App with its own isolated logger writing to logW.
func NewApp(ctx context.Context, outW, logW io.Writer, appConfig *Config) (*App, error) {
	settings := &config.Settings{}
	if appConfig.ConfigPath != "" {
		loader, err := loaderFor(appConfig.ConfigPath)
		if err != nil {
			return nil, err
		}
		loaded, err := loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings = loaded
	}

	level := firstNonEmpty(appConfig.LogLevel, settings.LogLevel, DefaultLogLevel)
	if err := ValidateLogLevel(level); err != nil {
		return nil, err
	}
	format := firstNonEmpty(appConfig.LogFormat, settings.LogFormat, DefaultLogFormat)
	if err := ValidateLogFormat(format); err != nil {
		return nil, err
	}
	if code := settings.NotFoundCode(); code < 0 || code > maxExitCode {
		return nil, fmt.Errorf("invalid not_found_exit_code %d: must be between 0 and %d", code, maxExitCode)
	}

	logger := newLogger(level, format, logW)
	logger.Debug("Logger configured successfully.", "level", level, "format", format)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		settings: settings,
	}, nil
}

// loaderFor picks a settings loader from the path's extension. Directories
// are treated as a collection of HCL files.
func loaderFor(path string) (config.Loader, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return hcl.NewLoader(), nil
	}
	switch filepath.Ext(path) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlcfg.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported settings file %s: expected .hcl, .yaml or .yml", path)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// withLogger embeds the app logger into ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
