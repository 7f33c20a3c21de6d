// Package platform recognises applicant tracking systems and job boards from
// a page URL and holds the per-platform selectors and timings the scan uses.
package platform

import (
	"net/url"
	"strings"
	"time"
)

// Platform represents a known job board or form host.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformGoogleForms is docs.google.com/forms
	PlatformGoogleForms Platform = "googleforms"
	// PlatformLinkedIn is LinkedIn jobs and Easy Apply
	PlatformLinkedIn Platform = "linkedin"
	// PlatformIndeed is Indeed
	PlatformIndeed Platform = "indeed"
	// PlatformNaukri is Naukri
	PlatformNaukri Platform = "naukri"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// Detect identifies the platform from a URL.
func Detect(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	path := strings.ToLower(parsed.Path)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com") || strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	case host == "docs.google.com" && strings.HasPrefix(path, "/forms"):
		return PlatformGoogleForms
	case hostIs(host, "linkedin.com"):
		return PlatformLinkedIn
	case hostIs(host, "indeed.com"):
		return PlatformIndeed
	case hostIs(host, "naukri.com"):
		return PlatformNaukri
	}
	return PlatformUnknown
}

func hostIs(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

const (
	// DefaultInitialDelay is the wait after page load before the first scan.
	DefaultInitialDelay = time.Second
	// googleFormsInitialDelay gives Google Forms time to render its questions.
	googleFormsInitialDelay = 3 * time.Second
	// googleFormsFollowUp is the extra scan Google Forms gets after the first.
	googleFormsFollowUp = 2 * time.Second
)

// InitialDelay returns how long to wait after load before the first scan.
// base replaces the default for platforms without their own delay.
func InitialDelay(p Platform, base time.Duration) time.Duration {
	if p == PlatformGoogleForms {
		return googleFormsInitialDelay
	}
	if base <= 0 {
		return DefaultInitialDelay
	}
	return base
}

// FollowUpScan returns the delay of an extra scan after the first one, or 0
// when the platform needs none.
func FollowUpScan(p Platform) time.Duration {
	if p == PlatformGoogleForms {
		return googleFormsFollowUp
	}
	return 0
}

// CandidateSelector matches every element a scan considers: text-like inputs,
// native selects and textareas, ARIA comboboxes and textboxes, popup buttons
// and Workday dropdowns.
const CandidateSelector = `input:not([type="hidden"]):not([type="file"]):not([type="submit"]), select, textarea, ` +
	`[role="combobox"], [role="button"][aria-haspopup], [data-automation-id*="dropdown"], [role="textbox"]`

// ExtraCandidateSelectors returns platform containers whose controls are
// scanned in addition to CandidateSelector.
func ExtraCandidateSelectors(p Platform) []string {
	if p == PlatformGoogleForms {
		return []string{
			`[role="listitem"] input`,
			`[role="listitem"] textarea`,
			`.freebirdFormviewerComponentsQuestionTextRoot input`,
			`.freebirdFormviewerComponentsQuestionTextRoot textarea`,
		}
	}
	return nil
}

// CompanySelectors returns selectors for the hiring company's name, most
// specific first.
func CompanySelectors(p Platform) []string {
	common := []string{
		`[data-company-name="true"]`,
		`[data-test="employer-name"]`,
		`[data-test-id="company-name"]`,
		`.company-name`,
	}
	switch p {
	case PlatformNaukri:
		return append([]string{
			`.job-desc-company-info .company-name`,
			`.salary-delivery .company-name`,
			`a.level-1`,
		}, common...)
	case PlatformLinkedIn:
		return append([]string{
			`.job-details-jobs-unified-top-card__company-name`,
			`.jobs-unified-top-card__company-name`,
		}, common...)
	case PlatformIndeed:
		return append([]string{`.jobsearch-CompanyAvatar-companyLink`}, common...)
	case PlatformGreenhouse:
		return append([]string{`.company-name`, `#header .company-name`}, common...)
	case PlatformLever:
		return append([]string{`.main-header-logo img[alt]`}, common...)
	default:
		return common
	}
}

// LocationSelectors returns selectors for the job location, most specific
// first.
func LocationSelectors(p Platform) []string {
	common := []string{
		`[data-test="job-location"]`,
		`[data-test-id="location"]`,
		`.job-location`,
		`.location`,
	}
	switch p {
	case PlatformNaukri:
		return append([]string{
			`.loc`,
			`.job-loc`,
			`[itemprop="jobLocation"]`,
			`.left-sec .loc`,
			`.meta-info .loc`,
			`.job-meta .loc`,
		}, common...)
	case PlatformLinkedIn:
		return append([]string{
			`.job-details-jobs-unified-top-card__workplace-type`,
			`.jobs-unified-top-card__workplace-type`,
		}, common...)
	case PlatformLever:
		return append([]string{`.posting-categories .location`, `.sort-by-location`}, common...)
	case PlatformWorkday:
		return append([]string{`[data-automation-id="locations"]`}, common...)
	default:
		return common
	}
}

// RoleSelectors returns selectors for the job title, used when the page
// title yields none.
func RoleSelectors(p Platform) []string {
	switch p {
	case PlatformNaukri:
		return []string{`h1.job-title`, `h1.jd-header-title`}
	case PlatformGreenhouse:
		return []string{`.app-title`, `h1.section-header`}
	case PlatformLever:
		return []string{`.posting-headline h2`}
	case PlatformWorkday:
		return []string{`[data-automation-id="jobPostingHeader"]`}
	default:
		return []string{`h1`}
	}
}

// KnownPortals are job boards whose name is never the hiring company.
var KnownPortals = []string{
	"Naukri", "LinkedIn", "Indeed", "Glassdoor", "Monster",
	"Foundit", "Instahyre", "Hirist", "Workday", "Greenhouse",
	"Lever", "Wellfound", "AngelList", "App.join",
}

// IsPortalName reports whether s names or contains a known job board.
func IsPortalName(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range KnownPortals {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// PortalName turns "jobs.lever.co" into "Jobs": the capitalised first label
// of a domain with any "www." removed.
func PortalName(domain string) string {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	if domain == "" {
		return "Unknown"
	}
	first, _, _ := strings.Cut(domain, ".")
	if first == "" {
		return "Unknown"
	}
	return strings.ToUpper(first[:1]) + first[1:]
}
