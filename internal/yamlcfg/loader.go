// Package yamlcfg provides the YAML implementation of the config.Loader
// interface.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/fileopen/internal/config"
	"github.com/specialistvlad/fileopen/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type document struct {
	NotFoundExitCode *int `yaml:"not_found_exit_code"`
	Logging          struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Loader reads settings from YAML files.
type Loader struct{}

// NewLoader creates a new YAML settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes each file in order, later files overriding earlier ones.
// Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	settings := &config.Settings{}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}

		var doc document
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
		}

		settings.Merge(&config.Settings{
			LogLevel:         strings.ToLower(doc.Logging.Level),
			LogFormat:        strings.ToLower(doc.Logging.Format),
			NotFoundExitCode: doc.NotFoundExitCode,
		})
		logger.Debug("YAML settings file loaded.", "path", path)
	}

	return settings, nil
}
