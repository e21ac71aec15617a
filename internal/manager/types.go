package manager

import "sentineld/internal/model"

// State represents lifecycle state of the manager.
type State string

const (
	// StateReady means a model is loaded and serving.
	StateReady State = "ready"
	// StateDegraded means no model could be loaded yet; /predict is
	// unavailable but the process keeps running and retrying.
	StateDegraded State = "degraded"
)

// Snapshot is one immutable, internally consistent serving state. All three
// fields were constructed together from the same registry response; a
// Snapshot is never mutated after construction, it is only replaced.
type Snapshot struct {
	// Model is the loaded predictor, nil while degraded.
	Model model.Predictor
	// Version is the registry version Model was fetched at, "" when nil.
	Version string
	// FeatureOrder is the exact column order Model was trained on.
	FeatureOrder []string
}

// Loaded reports whether the snapshot carries a usable model.
func (s *Snapshot) Loaded() bool { return s != nil && s.Model != nil }
