package profile

import "fmt"

// ValidationError reports a profile that failed struct validation.
type ValidationError struct {
	Profile string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Profile != "" {
		return fmt.Sprintf("invalid profile %q: %v", e.Profile, e.Cause)
	}
	return fmt.Sprintf("invalid profile: %v", e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
