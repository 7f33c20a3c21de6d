package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/speedyapply/internal/clock"
)

func TestExtractJob(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		markup string
		want   JobInfo
	}{
		{
			name: "json-ld job posting",
			url:  "https://www.naukri.com/job-listings-1",
			markup: `<html><head><title>Senior Go Developer | Naukri.com</title>
				<script type="application/ld+json">{"@context":"https://schema.org","@type":"JobPosting",
				"hiringOrganization":{"name":"  Globex   Corp "},
				"jobLocation":{"address":{"addressLocality":"Pune","addressRegion":"MH","addressCountry":"IN"}}}</script>
				</head><body></body></html>`,
			want: JobInfo{Role: "Senior Go Developer", Company: "Globex Corp", Location: "Pune, MH, IN", Portal: "Naukri"},
		},
		{
			name: "json-ld graph with confidential company",
			url:  "https://careers.example.org/jobs/9",
			markup: `<html><head><title>Analyst</title>
				<script type="application/ld+json">{"@graph":[{"@type":"Organization","name":"X"},
				{"@type":["JobPosting"],"hiringOrganization":{"name":"Confidential"},
				"jobLocation":[{"address":{"addressLocality":"Austin","addressCountry":{"name":"US"}}}]}]}</script>
				</head><body><span class="company-name">Initech</span></body></html>`,
			want: JobInfo{Role: "Analyst", Company: "Initech", Location: "Austin, US", Portal: "Careers"},
		},
		{
			name: "platform selectors",
			url:  "https://www.linkedin.com/jobs/view/1",
			markup: `<html><head><title>LinkedIn</title></head><body>
				<div class="job-details-jobs-unified-top-card__company-name"> Hooli </div>
				<span class="job-details-jobs-unified-top-card__workplace-type">Remote</span></body></html>`,
			want: JobInfo{Role: "LinkedIn", Company: "Hooli", Location: "Remote", Portal: "Linkedin"},
		},
		{
			name:   "company from title",
			url:    "https://boards.greenhouse.io/acme/jobs/1",
			markup: `<html><head><title>Job Application for Data Engineer at Acme Inc</title></head><body></body></html>`,
			want:   JobInfo{Role: "Job Application for Data Engineer at Acme Inc", Company: "Acme Inc", Portal: "Boards"},
		},
		{
			name: "og site name unless a portal",
			url:  "https://apply.example.com/x",
			markup: `<html><head><title></title><meta property="og:site_name" content="Umbrella"></head>
				<body><h1>Chemist</h1></body></html>`,
			want: JobInfo{Role: "Chemist", Company: "Umbrella", Portal: "Apply"},
		},
		{
			name: "portal names are dropped",
			url:  "https://apply.example.com/x",
			markup: `<html><head><title></title><meta property="og:site_name" content="Indeed"></head>
				<body></body></html>`,
			want: JobInfo{Role: "N/A", Portal: "Apply"},
		},
		{
			name:   "invalid json-ld is ignored",
			url:    "https://apply.example.com/x",
			markup: `<html><head><title>Tester - Vandelay</title><script type="application/ld+json">{oops</script></head></html>`,
			want:   JobInfo{Role: "Tester", Company: "Vandelay", Portal: "Apply"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJob(parse(t, tt.markup, tt.url)))
		})
	}
}

func TestRoleFromTitle(t *testing.T) {
	tests := map[string]string{
		"Front-End Engineer - Acme Careers": "Front-End Engineer",
		"Site Reliability Engineer | Globex": "Site Reliability Engineer",
		"Back-end/Full-stack Developer":     "Back-end/Full-stack Developer",
		"Data Analyst|Initech - Remote":     "Data Analyst|Initech",
		"  Chemist  ":                       "Chemist",
	}
	for title, want := range tests {
		assert.Equal(t, want, roleFromTitle(title), title)
	}
}

func TestRoleFromTitle_Truncates(t *testing.T) {
	long := "Principal Staff Distinguished Senior Software Engineer II"
	got := roleFromTitle(long + " | Careers")
	assert.LessOrEqual(t, len([]rune(got)), maxRoleLen)
	assert.Equal(t, "Principal", got[:9])
}

func TestScanAndFill_LogsApplicationOncePerHour(t *testing.T) {
	ctx := context.Background()
	c := clock.NewVirtual(epoch)
	s := newStore(t, nil)

	e := newEngine(s, c)
	rep, err := e.ScanAndFill(ctx, parse(t, applyForm, pageURL), ScanOptions{})
	require.NoError(t, err)
	require.NotNil(t, rep.Application)
	assert.Equal(t, pageURL, rep.Application.URL)
	assert.Equal(t, "Backend Engineer", rep.Application.Role)
	assert.Equal(t, "Acme Careers", rep.Application.Company)
	assert.Equal(t, "Jobs", rep.Application.Portal)
	assert.Equal(t, epoch, rep.Application.Timestamp)

	// Same engine: never again.
	rep, err = e.ScanAndFill(ctx, parse(t, applyForm, pageURL), ScanOptions{})
	require.NoError(t, err)
	assert.Nil(t, rep.Application)

	// Fresh engine within the hour: deduplicated by the stored log.
	c.Advance(30 * time.Minute)
	rep, err = newEngine(s, c).ScanAndFill(ctx, parse(t, applyForm, pageURL), ScanOptions{})
	require.NoError(t, err)
	assert.Nil(t, rep.Application)

	c.Advance(31 * time.Minute)
	rep, err = newEngine(s, c).ScanAndFill(ctx, parse(t, applyForm, pageURL), ScanOptions{})
	require.NoError(t, err)
	assert.NotNil(t, rep.Application)

	st, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Applications, 2)
}

func TestScanAndFill_NoMatchesNoLog(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, nil)
	rep, err := newEngine(s, clock.NewVirtual(epoch)).ScanAndFill(ctx, parse(t, `<form><input id="q"></form>`, pageURL), ScanOptions{})
	require.NoError(t, err)
	assert.Nil(t, rep.Application)

	st, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Applications)
}
