package config

import (
	"context"
)

// Loader is the interface for a format-specific service definition loader.
type Loader interface {
	// Load reads the service definition at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Service, error)
}
