package registry

import (
	"context"
	"sync"
)

// Static serves a fixed version and artifact from memory. Useful for local
// development without a registry and as a test double.
type Static struct {
	mu       sync.Mutex
	version  string
	artifact []byte
}

// NewStatic returns a Static client. An empty version behaves like a
// registry with no approved model.
func NewStatic(version string, artifact []byte) *Static {
	return &Static{version: version, artifact: artifact}
}

// Set replaces the served version and artifact.
func (s *Static) Set(version string, artifact []byte) {
	s.mu.Lock()
	s.version = version
	s.artifact = artifact
	s.mu.Unlock()
}

func (s *Static) ApprovedVersion(ctx context.Context, modelName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version == "" {
		return "", ErrNotFound
	}
	return s.version, nil
}

func (s *Static) FetchArtifact(ctx context.Context, modelName, version string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.artifact))
	copy(out, s.artifact)
	return out, nil
}
