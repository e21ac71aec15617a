package manager

import "strings"

// modelUnavailableError signals that no model is loaded yet (service booting
// degraded) so the HTTP layer can return 503 Service Unavailable.
type modelUnavailableError struct{}

func (modelUnavailableError) Error() string { return "model is loading or unavailable" }

// ErrModelUnavailable constructs a modelUnavailableError.
func ErrModelUnavailable() error { return modelUnavailableError{} }

// IsModelUnavailable reports whether err indicates the service has no model.
func IsModelUnavailable(err error) bool {
	_, ok := err.(modelUnavailableError)
	return ok
}

// schemaMismatchError signals an input record missing required feature
// columns, mapped to 400 Bad Request. No defaulting or imputation happens;
// input must be complete.
type schemaMismatchError struct{ missing []string }

func (e schemaMismatchError) Error() string {
	return "missing required features: " + strings.Join(e.missing, ", ")
}

// IsSchemaMismatch reports whether err indicates incomplete input.
func IsSchemaMismatch(err error) bool {
	_, ok := err.(schemaMismatchError)
	return ok
}

// inferenceFailedError signals a scoring failure inside the model, mapped to
// 500. The cause is usually a bad artifact rather than anything transient,
// so it is never retried.
type inferenceFailedError struct{ cause error }

func (e inferenceFailedError) Error() string { return "model inference failed: " + e.cause.Error() }

func (e inferenceFailedError) Unwrap() error { return e.cause }

// IsInferenceFailed reports whether err indicates a scoring failure.
func IsInferenceFailed(err error) bool {
	_, ok := err.(inferenceFailedError)
	return ok
}
