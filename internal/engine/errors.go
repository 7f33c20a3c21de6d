package engine

import "fmt"

// ScanError reports a scan that was aborted before touching the page.
type ScanError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scan of %s aborted: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scan of %s aborted: %s", e.URL, e.Message)
}

func (e *ScanError) Unwrap() error {
	return e.Cause
}
