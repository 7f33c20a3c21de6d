package injector

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jonathan/speedyapply/internal/dom"
)

// profileLayouts are the forms the resume parser and profile editor produce;
// they are tried before handing the value to dateparse.
var profileLayouts = []string{"2006-01", "2006-01-02", "Jan 2006", "January 2006", "Jan. 2006", "Jan, 2006", "January, 2006"}

// ParseDate parses a profile date: "2024-08", "2024-08-15", "Aug 2024",
// "August 2024", or any layout dateparse understands. Times are UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range profileLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsDateKey reports whether a key names a date field.
func IsDateKey(key string) bool {
	for _, marker := range []string{"Date", "start", "end", "dob"} {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}

// FormatDate renders value for a text-like element. Native date inputs get
// ISO dates; other inputs bound to a date key get MM/DD/YYYY, MM/YYYY when the
// placeholder asks for month and year, or DD/MM/YYYY for day-first
// placeholders. Unparseable values pass through unchanged.
func FormatDate(el *dom.Element, value, key string) string {
	isDateInput := el.Tag() == "input" && el.Type() == "date"
	if !isDateInput && !IsDateKey(key) {
		return value
	}
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	if isDateInput {
		return t.Format("2006-01-02")
	}
	placeholder := strings.ToLower(el.Placeholder())
	aria := strings.ToLower(el.Attr("aria-label"))
	switch {
	case strings.Contains(placeholder, "dd/mm"), strings.Contains(aria, "dd/mm"):
		return t.Format("02/01/2006")
	case strings.Contains(placeholder, "mm/yyyy"), strings.Contains(placeholder, "mm/yy"), strings.Contains(aria, "mm/yyyy"):
		return t.Format("01/2006")
	default:
		return t.Format("01/02/2006")
	}
}
