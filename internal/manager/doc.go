// Package manager owns the live model state: the currently serving
// (predictor, version, feature order) triple, the background refresh loop
// that keeps it fresh against the model registry, and the inference entry
// point. It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, snapshot/health accessors.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: Snapshot and State.
//   - errors.go: error types and helpers (IsModelUnavailable, IsSchemaMismatch, IsInferenceFailed).
//   - refresh.go: RefreshOnce and the Run polling loop.
//   - predict.go: Score executor and the Predict request entry point.
//   - metrics.go: prometheus domain metrics.
//
// Concurrency: the published snapshot lives in a single atomic pointer with
// exactly one writer (the refresh loop) and any number of readers (request
// handlers). Writers replace the pointer wholesale, never edit in place;
// readers work from their own retrieved reference for the whole request.
// Refresh cycles are serialized by a mutex so they never overlap.
//
// External packages should treat this package as the serving core and use
// public methods only (New/NewWithConfig, Current, Ready, Health, Status,
// Predict, RefreshOnce, Run). Internal types are subject to change.
package manager
