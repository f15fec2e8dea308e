package config

// Settings is the unified, format-agnostic representation of the optional
// settings file. Zero values mean "not set".
type Settings struct {
	LogLevel  string
	LogFormat string

	// NotFoundExitCode is the process status used when the target is not an
	// existing regular file. Nil keeps the historical status 0.
	NotFoundExitCode *int
}

// Merge overlays every field that is set in other onto s.
func (s *Settings) Merge(other *Settings) {
	if other == nil {
		return
	}
	if other.LogLevel != "" {
		s.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		s.LogFormat = other.LogFormat
	}
	if other.NotFoundExitCode != nil {
		code := *other.NotFoundExitCode
		s.NotFoundExitCode = &code
	}
}

// NotFoundCode returns the configured not-found exit status, defaulting to 0.
func (s *Settings) NotFoundCode() int {
	if s == nil || s.NotFoundExitCode == nil {
		return 0
	}
	return *s.NotFoundExitCode
}
