package schema

// Kind classifies a telemetry feature for boundary validation.
type Kind int

const (
	// Continuous is a raw sensor reading (JSON number).
	Continuous Kind = iota
	// FailureFlag is a binary failure-mode indicator (JSON number 0/1).
	FailureFlag
	// Derived is a numeric feature computed from raw readings (JSON number).
	Derived
	// TypeFlag is a one-hot machine-type indicator (JSON boolean).
	TypeFlag
)

// Feature pairs a column name with its boundary kind.
type Feature struct {
	Name string
	Kind Kind
}

// defaultFeatures is the compiled-in fallback schema. It mirrors the column
// order the production models are trained on: 5 sensor readings, 5 failure
// flags, 2 derived features, 3 machine-type flags.
var defaultFeatures = []Feature{
	{"air_temp_k", Continuous},
	{"proc_temp_k", Continuous},
	{"rpm", Continuous},
	{"torque_nm", Continuous},
	{"tool_wear_min", Continuous},
	{"TWF", FailureFlag},
	{"HDF", FailureFlag},
	{"PWF", FailureFlag},
	{"OSF", FailureFlag},
	{"RNF", FailureFlag},
	{"temp_diff_k", Derived},
	{"power", Derived},
	{"type_H", TypeFlag},
	{"type_L", TypeFlag},
	{"type_M", TypeFlag},
}

// DefaultOrder returns the fallback column order as a fresh slice.
func DefaultOrder() []string {
	out := make([]string, len(defaultFeatures))
	for i, f := range defaultFeatures {
		out[i] = f.Name
	}
	return out
}

// KindOf reports the boundary kind for a known feature name.
func KindOf(name string) (Kind, bool) {
	for _, f := range defaultFeatures {
		if f.Name == name {
			return f.Kind, true
		}
	}
	return 0, false
}

// Features returns the full fallback feature table.
func Features() []Feature {
	out := make([]Feature, len(defaultFeatures))
	copy(out, defaultFeatures)
	return out
}
