// Package registry abstracts the external model registry: which model
// version is approved for serving, and the artifact bytes for a version.
// The registry stores and versions models on its own; this package only
// consumes its read surface.
package registry

import (
	"context"
	"errors"
)

// ErrNotFound reports that the registry has no approved version for the
// requested model name.
var ErrNotFound = errors.New("registry: no approved model version")

// Client is the read contract against the model registry. Both calls are
// idempotent and safe to repeat; the registry may be temporarily
// unreachable, in which case calls return ordinary errors.
type Client interface {
	// ApprovedVersion returns the version identifier currently approved
	// for serving. The identifier is opaque: callers compare it only for
	// equality. Returns ErrNotFound when no version is approved.
	ApprovedVersion(ctx context.Context, modelName string) (string, error)
	// FetchArtifact downloads the serialized model artifact for a version.
	FetchArtifact(ctx context.Context, modelName, version string) ([]byte, error)
}
