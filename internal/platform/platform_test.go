package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://docs.google.com/forms/d/e/abc/viewform", PlatformGoogleForms},
		{"https://docs.google.com/document/d/abc", PlatformUnknown},
		{"https://www.linkedin.com/jobs/view/123", PlatformLinkedIn},
		{"https://in.indeed.com/viewjob?jk=1", PlatformIndeed},
		{"https://www.naukri.com/job-listings-x", PlatformNaukri},
		{"https://notlinkedin.com/jobs", PlatformUnknown},
		{"https://example.com/jobs", PlatformUnknown},
		{"::not a url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.url))
		})
	}
}

func TestTimings(t *testing.T) {
	assert.Equal(t, 3*time.Second, InitialDelay(PlatformGoogleForms, 0))
	assert.Equal(t, time.Second, InitialDelay(PlatformLever, 0))
	assert.Equal(t, 250*time.Millisecond, InitialDelay(PlatformLever, 250*time.Millisecond))
	assert.Equal(t, 2*time.Second, FollowUpScan(PlatformGoogleForms))
	assert.Zero(t, FollowUpScan(PlatformWorkday))
}

func TestExtraCandidateSelectors(t *testing.T) {
	assert.NotEmpty(t, ExtraCandidateSelectors(PlatformGoogleForms))
	assert.Empty(t, ExtraCandidateSelectors(PlatformGreenhouse))
}

func TestSelectors_PlatformFirst(t *testing.T) {
	assert.Equal(t, ".job-details-jobs-unified-top-card__company-name", CompanySelectors(PlatformLinkedIn)[0])
	assert.Equal(t, ".loc", LocationSelectors(PlatformNaukri)[0])
	assert.Contains(t, CompanySelectors(PlatformUnknown), ".company-name")
	assert.Contains(t, LocationSelectors(PlatformUnknown), ".location")
	assert.Equal(t, []string{"h1"}, RoleSelectors(PlatformUnknown))
}

func TestIsPortalName(t *testing.T) {
	tests := map[string]bool{
		"LinkedIn":           true,
		"Jobs via naukri":    true,
		"Acme Corp":          false,
		"Greenhouse Careers": true,
		"":                   false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsPortalName(in), in)
	}
}

func TestPortalName(t *testing.T) {
	tests := map[string]string{
		"www.naukri.com": "Naukri",
		"jobs.lever.co":  "Jobs",
		"LinkedIn.com":   "Linkedin",
		"":               "Unknown",
		"localhost":      "Localhost",
	}
	for in, want := range tests {
		assert.Equal(t, want, PortalName(in), in)
	}
}
