// Package audit ships one record per successful prediction to an object
// store, partitioned by UTC date. Delivery is strictly best-effort: a sink
// failure is logged and dropped, never surfaced to the request that
// produced the record.
package audit

import (
	"fmt"
	"time"

	"sentineld/pkg/types"
)

// Record is the audit payload written per prediction.
type Record struct {
	Timestamp             time.Time       `json:"timestamp"`
	InputFeatures         types.Telemetry `json:"input_features"`
	PredictionLabel       int             `json:"prediction_label"`
	PredictionProbability float64         `json:"prediction_probability"`
	ModelVersion          string          `json:"model_version"`
}

// ObjectKey builds the time-partitioned storage key for a record:
// year=YYYY/month=MM/day=DD/<RFC3339Nano>.json. The timestamp doubles as a
// unique identifier within the partition.
func (r Record) ObjectKey() string {
	ts := r.Timestamp.UTC()
	return fmt.Sprintf("year=%04d/month=%02d/day=%02d/%s.json",
		ts.Year(), int(ts.Month()), ts.Day(), ts.Format(time.RFC3339Nano))
}

// Publisher receives records from the serving path. Implementations must be
// lightweight and non-blocking; Publish must not panic.
type Publisher interface {
	Publish(Record)
}

// Noop drops records. It is the default when no sink is configured.
type Noop struct{}

func (Noop) Publish(Record) {}
