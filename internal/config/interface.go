package config

import "context"

// Loader is the interface for a format-specific scene loader.
type Loader interface {
	// Load reads every scene file found under paths and resolves them
	// into a single Scene. Files may split declarations freely; references
	// are resolved once all of them have been read.
	Load(ctx context.Context, paths ...string) (*Scene, error)
}
