package resume

import "fmt"

// ParseError is a user-facing failure to read resume files. Message is
// suitable for display as is.
type ParseError struct {
	Message string
	Path    string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

const (
	msgNoTexInZip  = "No .tex file found in ZIP archive."
	msgNothingRead = "No valid .tex or .zip files found or all failed to parse."
)
