package resume

import (
	"regexp"
	"strings"
)

var (
	reBold      = regexp.MustCompile(`\\textbf\{([^}]+)\}`)
	reItalic    = regexp.MustCompile(`\\textit\{([^}]+)\}`)
	reHref      = regexp.MustCompile(`\\href\{[^}]+\}\{([^}]+)\}`)
	reMacroArg  = regexp.MustCompile(`\\[a-zA-Z]+\{([^}]*)\}`)
	reMacro     = regexp.MustCompile(`\\[a-zA-Z]+`)
	reSpaceRuns = regexp.MustCompile(`\s+`)
)

// CleanLaTeX strips LaTeX markup from text. Formatting macros keep their
// argument, links keep their display text, bare macros are dropped, and
// whitespace is collapsed.
func CleanLaTeX(text string) string {
	if text == "" {
		return ""
	}
	text = reBold.ReplaceAllString(text, "$1")
	text = reItalic.ReplaceAllString(text, "$1")
	text = reHref.ReplaceAllString(text, "$1")
	text = reMacroArg.ReplaceAllString(text, "$1")
	text = reMacro.ReplaceAllString(text, "")
	text = strings.NewReplacer("~", " ", "--", "-", "&", "").Replace(text)
	text = strings.ReplaceAll(text, `\\`, " ")
	text = reSpaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var monthNumbers = map[string]string{
	"jan": "01", "january": "01",
	"feb": "02", "february": "02",
	"mar": "03", "march": "03",
	"apr": "04", "april": "04",
	"may": "05",
	"jun": "06", "june": "06",
	"jul": "07", "july": "07",
	"aug": "08", "august": "08",
	"sep": "09", "sept": "09", "september": "09",
	"oct": "10", "october": "10",
	"nov": "11", "november": "11",
	"dec": "12", "december": "12",
}

var (
	reMonthYear = regexp.MustCompile(`(?i)^([a-z]+)\.?\s+(\d{4})$`)
	reYearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)
	rePresent   = regexp.MustCompile(`(?i)^(present|current)$`)
)

// NormalizeDate converts "Aug 2024" or "August 2024" to "2024-08" and
// "present"/"current" to "Present". Values already in YYYY-MM form, and
// anything it cannot read, come back trimmed but otherwise unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if rePresent.MatchString(s) {
		return "Present"
	}
	if m := reMonthYear.FindStringSubmatch(s); m != nil {
		if num, ok := monthNumbers[strings.ToLower(m[1])]; ok {
			return m[2] + "-" + num
		}
	}
	return s
}

var rangeSeparators = []string{"--", "–", " - "}

// splitRange splits a raw date range such as "Aug 2024 -- Present" into
// normalized start and end dates. A single date is both start and end.
func splitRange(raw string) (start, end string) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), `\\`))
	parts := []string{raw}
	for _, sep := range rangeSeparators {
		if strings.Contains(raw, sep) {
			parts = strings.SplitN(raw, sep, 2)
			break
		}
	}
	start = NormalizeDate(CleanLaTeX(parts[0]))
	end = start
	if len(parts) > 1 {
		if e := NormalizeDate(CleanLaTeX(parts[1])); e != "" {
			end = e
		}
	}
	return start, end
}
