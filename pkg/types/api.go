package types

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	// Calibrated probability of machine failure in [0,1].
	// example: 0.82
	FailureRisk float64 `json:"failure_risk" example:"0.82"`
	// Thresholded label: 1 iff failure_risk >= 0.5.
	// example: 1
	Label int `json:"label" example:"1"`
	// Registry version of the model that served this prediction.
	// example: 7
	Version string `json:"version" example:"7"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// "ok" when a model is loaded, "loading_or_error" otherwise.
	// example: ok
	Status string `json:"status" example:"ok"`
	// Version of the currently serving model, empty when none is loaded.
	// example: 7
	ModelVersion string `json:"model_version,omitempty" example:"7"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall manager state (ready, degraded).
	// example: ready
	State string `json:"state" example:"ready"`
	// Version of the currently serving model, empty when none is loaded.
	// example: 7
	ModelVersion string `json:"model_version,omitempty" example:"7"`
	// Number of feature columns the serving model expects.
	// example: 15
	FeatureCount int `json:"feature_count" example:"15"`
	// Number of model swaps applied since boot.
	// example: 3
	UpdatesApplied uint64 `json:"updates_applied" example:"3"`
	// Last time a refresh cycle completed (unix seconds, 0 if never).
	// example: 1700000000
	LastRefreshUnix int64 `json:"last_refresh_unix" example:"1700000000"`
	// Last refresh error observed (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
