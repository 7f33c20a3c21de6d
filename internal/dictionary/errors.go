package dictionary

import "fmt"

// EntryError reports a malformed dictionary row.
type EntryError struct {
	Key     string
	Message string
	Cause   error
}

func (e *EntryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dictionary entry %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("dictionary entry %s: %s", e.Key, e.Message)
}

func (e *EntryError) Unwrap() error {
	return e.Cause
}
