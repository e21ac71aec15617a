package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"sentineld/internal/schema"
	"sentineld/pkg/types"
)

// decodeTelemetry enforces the strict request contract: exactly the
// documented feature keys, numeric fields as JSON numbers, machine-type
// flags as JSON booleans. Missing, unknown, or mistyped fields are client
// errors; nothing is defaulted or imputed.
func decodeTelemetry(r io.Reader) (types.Telemetry, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}

	for name := range raw {
		if _, ok := schema.KindOf(name); !ok {
			return nil, fmt.Errorf("unknown field: %s", name)
		}
	}

	rec := make(types.Telemetry, len(schema.Features()))
	var missing []string
	for _, f := range schema.Features() {
		val, ok := raw[f.Name]
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		switch f.Kind {
		case schema.TypeFlag:
			var b bool
			if err := json.Unmarshal(val, &b); err != nil {
				return nil, fmt.Errorf("field %s must be a boolean", f.Name)
			}
			if b {
				rec[f.Name] = 1
			} else {
				rec[f.Name] = 0
			}
		default:
			var x float64
			if err := json.Unmarshal(val, &x); err != nil {
				return nil, fmt.Errorf("field %s must be a number", f.Name)
			}
			rec[f.Name] = x
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required fields: %v", missing)
	}
	return rec, nil
}
