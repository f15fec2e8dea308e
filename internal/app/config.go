package app

import "errors"

// Config is the parsed invocation: the target file plus ambient options.
// Empty option fields mean "not given on the command line".
type Config struct {
	FilePath   string // used byte-exact for filesystem calls
	ConfigPath string

	LogLevel  string
	LogFormat string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.FilePath == "" {
		return nil, errors.New("file is a required argument and cannot be empty")
	}
	if cfg.LogLevel != "" {
		if err := ValidateLogLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	if cfg.LogFormat != "" {
		if err := ValidateLogFormat(cfg.LogFormat); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
