package app

import "fmt"

// Error taxonomy for the loadsheet engine. Expected failure modes are
// returned as typed errors and classified with errors.As at call boundaries;
// only construction-time contract violations panic.

// ConfigurationError is fatal and never retried: missing backend URL, zero
// total capacity, malformed profile.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Msg)
}

// PreconditionError is fatal for the current call only; the caller must
// remediate upstream (e.g. establish a fuel target) and try again.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition not met: %s", e.Msg)
}

// ComputationError reports numerically invalid input, such as a zero total
// weight when deriving CG.
type ComputationError struct {
	Msg string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation error: %s", e.Msg)
}

// TransientNetworkError wraps a timeout or connection failure; eligible for
// retry up to the configured attempt budget.
type TransientNetworkError struct {
	Op  string
	Err error
}

func (e *TransientNetworkError) Error() string {
	return fmt.Sprintf("transient network error during %s: %v", e.Op, e.Err)
}

func (e *TransientNetworkError) Unwrap() error {
	return e.Err
}

// PermanentServerError carries the final non-2xx response after retries are
// exhausted. Not retried further.
type PermanentServerError struct {
	StatusCode int
	Body       string
}

func (e *PermanentServerError) Error() string {
	return fmt.Sprintf("server rejected request with status %d: %s", e.StatusCode, e.Body)
}

// ParseError reports a malformed telemetry value or notification payload.
// The affected item is dropped; the pipeline continues.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
