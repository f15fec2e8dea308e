package config

import "context"

// Loader is the interface for a format-specific settings loader.
type Loader interface {
	// Load reads settings from the given paths and merges them in order,
	// later paths overriding earlier ones.
	Load(ctx context.Context, paths ...string) (*Settings, error)
}
