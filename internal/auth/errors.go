package auth

import "fmt"

// ConfigurationError indicates chirp cannot run with the credentials it
// was given: a partial credential set, or OAuth 2.0 mode without a
// persisted token set. It is raised during startup wiring, before any
// network call, and is not retryable without operator action.
type ConfigurationError struct {
	// Reason describes what is missing or inconsistent, phrased for the
	// operator who has to fix the config file.
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// Flow stages reported by AuthorizationFlowError.
const (
	// StageCallback covers waiting for and reading the redirect:
	// listener failures, timeouts, provider error parameters, and
	// responses that carry no authorization code.
	StageCallback = "callback"

	// StageStateCheck is the CSRF check of the returned state value.
	// A mismatch aborts the flow before any code exchange happens.
	StageStateCheck = "state verification"

	// StageExchange is the authorization code exchange at the token
	// endpoint.
	StageExchange = "code exchange"
)

// AuthorizationFlowError indicates the interactive login flow failed
// partway. Nothing is persisted when this error is returned; the flow
// either completes fully or leaves the token store untouched.
type AuthorizationFlowError struct {
	// Stage is one of the Stage* constants.
	Stage string

	// Reason is a human-readable description of what went wrong.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *AuthorizationFlowError) Error() string {
	msg := fmt.Sprintf("authorization flow failed during %s: %s", e.Stage, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chain inspection.
func (e *AuthorizationFlowError) Unwrap() error {
	return e.Err
}
