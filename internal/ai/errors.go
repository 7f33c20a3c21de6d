package ai

import "fmt"

// APICallError represents a failed request to an LLM provider.
type APICallError struct {
	Provider   Provider
	StatusCode int
	Message    string
	Cause      error
}

func (e *APICallError) Error() string {
	msg := fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s API call failed (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ResponseError represents a provider reply the fallback cannot use.
type ResponseError struct {
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unusable response: %s", e.Message)
}
