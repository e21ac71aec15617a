package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
)

// FormatLogRegV1 identifies the logistic-regression artifact format the
// offline trainer exports for serving.
const FormatLogRegV1 = "sentinel.logreg.v1"

// artifact is the serialized model document. Weights are keyed by feature
// name so the artifact is self-describing and independent of column order.
type artifact struct {
	Format    string             `json:"format"`
	Weights   map[string]float64 `json:"weights"`
	Intercept float64            `json:"intercept"`
}

// logReg is a logistic-regression scorer with coefficients aligned to a
// fixed column order at decode time.
type logReg struct {
	coef      []float64
	intercept float64
}

func (m *logReg) PredictProba(features []float64) (float64, error) {
	if len(features) != len(m.coef) {
		return 0, fmt.Errorf("feature vector length %d, model expects %d", len(features), len(m.coef))
	}
	z := m.intercept
	for i, w := range m.coef {
		z += w * features[i]
	}
	p := 1.0 / (1.0 + math.Exp(-z))
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("non-finite score")
	}
	return p, nil
}

// Decode parses a model artifact and aligns its weights to featureOrder.
// Every name in featureOrder must carry a weight; a gap means the artifact
// and schema disagree and the model must not serve.
func Decode(data []byte, featureOrder []string) (Predictor, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if a.Format != FormatLogRegV1 {
		return nil, fmt.Errorf("unsupported artifact format: %q", a.Format)
	}
	if len(featureOrder) == 0 {
		return nil, fmt.Errorf("empty feature order")
	}
	coef := make([]float64, len(featureOrder))
	for i, name := range featureOrder {
		w, ok := a.Weights[name]
		if !ok {
			return nil, fmt.Errorf("artifact has no weight for feature %q", name)
		}
		coef[i] = w
	}
	return &logReg{coef: coef, intercept: a.Intercept}, nil
}

// Checksum returns the hex sha256 of an artifact payload, logged on every
// load so a serving version can be tied back to the registry blob.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
