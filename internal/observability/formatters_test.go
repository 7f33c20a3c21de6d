package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/speedyapply/internal/engine"
	"github.com/jonathan/speedyapply/internal/platform"
	"github.com/jonathan/speedyapply/internal/profile"
	"github.com/jonathan/speedyapply/internal/resume"
	"github.com/jonathan/speedyapply/internal/store"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&engine.Report{
		URL:        "https://boards.greenhouse.io/acme/jobs/1",
		Platform:   platform.PlatformGreenhouse,
		ProfileID:  "p1",
		FillActive: true,
		Candidates: 4,
		Matches:    2,
		Filled:     2,
		AIFilled:   1,
		Fields: []engine.Field{
			{Label: "First Name", Key: "personal.firstName", Value: "Jane", Source: engine.SourceDictionary, Filled: true},
			{Label: "Email", Key: "personal.email", Source: engine.SourceDictionary, Skipped: "already filled"},
			{Label: "Favourite colour", Value: "Blue", Source: engine.SourceAI, Filled: true},
		},
		Application: &store.Application{Role: "Engineer", Company: "Acme", Portal: "Boards"},
	})

	output := buf.String()
	assert.Contains(t, output, "SCAN REPORT")
	assert.Contains(t, output, "Candidates: 4  Matches: 2  Filled: 2  AI: 1")
	assert.Contains(t, output, "✓ First Name")
	assert.Contains(t, output, "= Jane")
	assert.Contains(t, output, "(already filled)")
	assert.Contains(t, output, "✦ Favourite colour")
	assert.Contains(t, output, "Logged: Engineer at Acme (Boards)")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintCandidates(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCandidates([]CandidateRow{
		{Element: `<input id="fn">`, Label: "First Name", Key: "personal.firstName", Score: 140, Signals: []string{"id", "label"}},
		{Element: `<input id="q">`},
	}, 10)

	output := buf.String()
	assert.Contains(t, output, "2 candidates, threshold 10")
	assert.Contains(t, output, "key:   personal.firstName (140)")
	assert.Contains(t, output, "via:   id, label")
	assert.Contains(t, output, "no match")
}

func TestPrintProfiles(t *testing.T) {
	st := store.NewState()
	a := profile.New("Main")
	b := profile.New("Side")
	st.AddProfile(*a)
	st.AddProfile(*b)
	st.ActiveProfileID = b.ID
	st.SetPageEnabled("b.example.com", true)
	st.SetPageEnabled("a.example.com", true)
	st.SetPageEnabled("c.example.com", false)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfiles(st)

	output := buf.String()
	assert.Contains(t, output, "Enabled:  a.example.com, b.example.com")
	assert.Contains(t, output, "Disabled: c.example.com")
	assert.Contains(t, output, "* "+b.ID+"  Side")
	assert.Contains(t, output, "  "+a.ID+"  Main")
}

func TestPrintProfile(t *testing.T) {
	prof := profile.New("Main")
	prof.Data.Personal = profile.Personal{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	for i := 0; i < 12; i++ {
		prof.Data.Work = append(prof.Data.Work, profile.Work{Company: "Globex", Title: "Engineer"})
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(prof)

	output := buf.String()
	assert.Contains(t, output, "Name:     Jane Doe")
	assert.Contains(t, output, "Phone:    -")
	assert.Contains(t, output, "Engineer, Globex (- - -)")
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Education:")
}

func TestPrintResumes(t *testing.T) {
	batch := &resume.Batch{Results: []resume.FileResult{
		{Path: "jane.tex", Record: &resume.Record{FirstName: "Jane", LastName: "Doe", ResumeName: "jane", Experience: "5"}},
		{Path: "broken.zip", Err: errors.New("no .tex file in archive")},
	}}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumes(batch)

	output := buf.String()
	assert.Contains(t, output, "PARSED RESUMES (1/2)")
	assert.Contains(t, output, "✓ jane")
	assert.Contains(t, output, "0 jobs, 0 schools, experience 5")
	assert.Contains(t, output, "✗ broken.zip")
}

func TestPrintApplications_NewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	var apps []store.Application
	for i := 0; i < 12; i++ {
		apps = append(apps, store.Application{Role: "Role" + string(rune('A'+i)), Portal: "Lever", Timestamp: base.Add(time.Duration(i) * time.Hour)})
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintApplications(apps)

	output := buf.String()
	assert.Less(t, strings.Index(output, "RoleL"), strings.Index(output, "RoleK"))
	assert.NotContains(t, output, "RoleB @")
	assert.Contains(t, output, "... and 2 older")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
}
