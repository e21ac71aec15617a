package model

// Predictor scores one ordered feature vector and reports the probability
// of the positive (failure) class in [0,1]. Implementations must be safe
// for concurrent use: inference never mutates the predictor.
type Predictor interface {
	PredictProba(features []float64) (float64, error)
}
