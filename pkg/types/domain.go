package types

// Telemetry is one flat machine telemetry sample: feature name -> numeric
// value. Boolean flags are encoded as 0/1. Keys and required completeness
// are enforced at the HTTP boundary; inside the service a record is just
// this map.
type Telemetry map[string]float64

// Clone returns an independent copy of the record.
func (t Telemetry) Clone() Telemetry {
	out := make(Telemetry, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
