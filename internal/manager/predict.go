package manager

import (
	"time"

	"sentineld/internal/audit"
	"sentineld/pkg/types"
)

// failureThreshold is the fixed decision boundary: probability >= threshold
// yields label 1.
const failureThreshold = 0.5

// Score runs inference for one record against one snapshot. The record is
// reordered into the snapshot's exact column order; a missing feature is a
// schema mismatch, not a defaultable gap. Score is pure with respect to its
// inputs and performs no retries: a scoring failure is deterministic.
func Score(snap *Snapshot, rec types.Telemetry) (types.PredictResponse, error) {
	if !snap.Loaded() {
		return types.PredictResponse{}, ErrModelUnavailable()
	}
	features := make([]float64, len(snap.FeatureOrder))
	var missing []string
	for i, name := range snap.FeatureOrder {
		v, ok := rec[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		features[i] = v
	}
	if len(missing) > 0 {
		return types.PredictResponse{}, schemaMismatchError{missing: missing}
	}
	proba, err := snap.Model.PredictProba(features)
	if err != nil {
		return types.PredictResponse{}, inferenceFailedError{cause: err}
	}
	label := 0
	if proba >= failureThreshold {
		label = 1
	}
	return types.PredictResponse{FailureRisk: proba, Label: label, Version: snap.Version}, nil
}

// Predict serves one request from a single consistent snapshot, updates the
// observability counters, and hands the audit publisher a record. Audit
// delivery is fire-and-forget: its outcome never alters the response.
func (m *Manager) Predict(rec types.Telemetry) (types.PredictResponse, error) {
	snap := m.Current()
	resp, err := Score(snap, rec)
	if err != nil {
		return types.PredictResponse{}, err
	}
	predictionsTotal.Inc()
	lastFailureRisk.Set(resp.FailureRisk)

	m.audit.Publish(audit.Record{
		Timestamp:             time.Now().UTC(),
		InputFeatures:         rec.Clone(),
		PredictionLabel:       resp.Label,
		PredictionProbability: resp.FailureRisk,
		ModelVersion:          resp.Version,
	})
	return resp, nil
}
