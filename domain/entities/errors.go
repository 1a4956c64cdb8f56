package entities

import "fmt"

// BackendError indicates that a translation backend call failed: a non-2xx
// HTTP status, a malformed response, or a provider-reported error. The
// orchestrator recovers from it by falling back to the offline backend.
type BackendError struct {
	Provider string
	Op       string
	Message  string
	Err      error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Op, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// ConfigurationError indicates a reference to a provider that is not
// registered. It propagates to the caller and never triggers fallback.
type ConfigurationError struct {
	Provider string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("translation provider %q not available", e.Provider)
}

// ValidationError indicates malformed input. Empty or whitespace-only text
// is not a validation error; it short-circuits successfully.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
