package manager

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"sentineld/internal/audit"
	"sentineld/internal/model"
	"sentineld/internal/registry"
	"sentineld/internal/schema"
)

// fakeRegistry is a controllable registry double that counts calls.
type fakeRegistry struct {
	mu           sync.Mutex
	version      string
	artifact     []byte
	versionErr   error
	fetchErr     error
	versionCalls int
	fetchCalls   int
}

func (f *fakeRegistry) set(version string, artifact []byte) {
	f.mu.Lock()
	f.version = version
	f.artifact = artifact
	f.mu.Unlock()
}

func (f *fakeRegistry) ApprovedVersion(ctx context.Context, modelName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.versionCalls++
	if f.versionErr != nil {
		return "", f.versionErr
	}
	if f.version == "" {
		return "", registry.ErrNotFound
	}
	return f.version, nil
}

func (f *fakeRegistry) FetchArtifact(ctx context.Context, modelName, version string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]byte, len(f.artifact))
	copy(out, f.artifact)
	return out, nil
}

func (f *fakeRegistry) fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

// memPublisher records published audit records for assertions.
type memPublisher struct {
	mu   sync.Mutex
	recs []audit.Record
}

func (p *memPublisher) Publish(r audit.Record) {
	p.mu.Lock()
	p.recs = append(p.recs, r)
	p.mu.Unlock()
}

func (p *memPublisher) records() []audit.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]audit.Record, len(p.recs))
	copy(out, p.recs)
	return out
}

// stubPredictor returns a fixed probability or error.
type stubPredictor struct {
	p   float64
	err error
}

func (s stubPredictor) PredictProba([]float64) (float64, error) { return s.p, s.err }

// newTestSchema writes a feature_list.json with the given names and returns
// a loader reading it.
func newTestSchema(t *testing.T, names ...string) *schema.Loader {
	t.Helper()
	b, err := json.Marshal(names)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	p := filepath.Join(t.TempDir(), "feature_list.json")
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return schema.NewLoader(p, zerolog.Nop())
}

// makeArtifact builds a logistic-regression artifact payload.
func makeArtifact(t *testing.T, weights map[string]float64, intercept float64) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"format":    model.FormatLogRegV1,
		"weights":   weights,
		"intercept": intercept,
	})
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	return b
}

func newTestManager(t *testing.T, reg *fakeRegistry, pub audit.Publisher, names ...string) *Manager {
	t.Helper()
	if len(names) == 0 {
		names = []string{"f1"}
	}
	return NewWithConfig(ManagerConfig{
		Registry: reg,
		Schema:   newTestSchema(t, names...),
		Audit:    pub,
		Logger:   zerolog.Nop(),
	})
}
