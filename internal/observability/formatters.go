// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/speedyapply/internal/engine"
	"github.com/jonathan/speedyapply/internal/profile"
	"github.com/jonathan/speedyapply/internal/resume"
	"github.com/jonathan/speedyapply/internal/store"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// PrintReport outputs the outcome of one scan.
func (p *Printer) PrintReport(rep *engine.Report) {
	if rep == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page:       %s\n", rep.URL))
	sb.WriteString(fmt.Sprintf("Platform:   %s\n", rep.Platform))
	sb.WriteString(fmt.Sprintf("Profile:    %s\n", orDash(rep.ProfileID)))
	sb.WriteString(fmt.Sprintf("Filling:    %t (force %t)\n", rep.FillActive, rep.Force))
	sb.WriteString(fmt.Sprintf("Candidates: %d  Matches: %d  Filled: %d  AI: %d\n",
		rep.Candidates, rep.Matches, rep.Filled, rep.AIFilled))

	if len(rep.Fields) > 0 {
		sb.WriteString("\n")
		for _, f := range rep.Fields {
			mark := "·"
			switch {
			case f.Filled && f.Source == engine.SourceAI:
				mark = "✦"
			case f.Filled:
				mark = "✓"
			case f.Skipped != "":
				mark = "✗"
			}
			key := f.Key
			if key == "" {
				key = string(f.Source)
			}
			line := fmt.Sprintf("%s %-22s %-24s", mark, truncate(orDash(f.Label), 22), truncate(orDash(key), 24))
			if f.Filled {
				line += " = " + f.Value
			} else if f.Skipped != "" {
				line += " (" + f.Skipped + ")"
			}
			sb.WriteString(line + "\n")
		}
	}

	if rep.Application != nil {
		a := rep.Application
		sb.WriteString(fmt.Sprintf("\nLogged: %s at %s (%s)\n", a.Role, orDash(a.Company), a.Portal))
	}

	p.printBox("SCAN REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// CandidateRow is one line of the identify view.
type CandidateRow struct {
	Element string
	Label   string
	Key     string
	Score   int
	Signals []string
}

// PrintCandidates outputs the identify view of every candidate control.
func (p *Printer) PrintCandidates(rows []CandidateRow, threshold int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d candidates, threshold %d\n\n", len(rows), threshold))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s\n", r.Element))
		sb.WriteString(fmt.Sprintf("    label: %s\n", orDash(r.Label)))
		if r.Key == "" {
			sb.WriteString("    no match\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("    key:   %s (%d)\n", r.Key, r.Score))
		if len(r.Signals) > 0 {
			sb.WriteString(fmt.Sprintf("    via:   %s\n", strings.Join(r.Signals, ", ")))
		}
	}
	p.printBox("FIELD IDENTIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfiles outputs the stored profiles and global switches.
func (p *Printer) PrintProfiles(st *store.State) {
	if st == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Autofill: %t   AI: %t (%s)\n", st.AutoFillEnabled, st.UseOllama, st.Model()))
	if len(st.PageSettings) > 0 {
		var on, off []string
		for domain, enabled := range st.PageSettings {
			if enabled {
				on = append(on, domain)
			} else {
				off = append(off, domain)
			}
		}
		slices.Sort(on)
		slices.Sort(off)
		if len(on) > 0 {
			sb.WriteString(fmt.Sprintf("Enabled:  %s\n", strings.Join(on, ", ")))
		}
		if len(off) > 0 {
			sb.WriteString(fmt.Sprintf("Disabled: %s\n", strings.Join(off, ", ")))
		}
	}
	sb.WriteString("\n")

	if len(st.Profiles) == 0 {
		sb.WriteString("No profiles stored\n")
	}
	for _, prof := range st.Profiles {
		mark := " "
		if prof.ID == st.ActiveProfileID {
			mark = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s\n", mark, prof.ID, prof.Name))
	}

	p.printBox("PROFILES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs the main fields of one profile.
func (p *Printer) PrintProfile(prof *profile.Profile) {
	if prof == nil {
		return
	}
	d := prof.Data

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s %s\n", d.Personal.FirstName, d.Personal.LastName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(d.Personal.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(d.Personal.Phone)))
	sb.WriteString(fmt.Sprintf("Location: %s\n", orDash(d.Personal.Location)))
	if d.Links.LinkedIn != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", d.Links.LinkedIn))
	}
	if d.Profile.Skills != "" {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", d.Profile.Skills))
	}

	writeList(&sb, "Work", len(d.Work), func(i int) string {
		w := d.Work[i]
		return fmt.Sprintf("%s, %s (%s - %s)", orDash(w.Title), orDash(w.Company), orDash(w.StartDate), orDash(w.EndDate))
	})
	writeList(&sb, "Education", len(d.Education), func(i int) string {
		e := d.Education[i]
		return fmt.Sprintf("%s, %s", orDash(e.Degree), orDash(e.School))
	})

	p.printBox("PROFILE "+prof.Name, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumes outputs a parsed resume batch, failures included.
func (p *Printer) PrintResumes(batch *resume.Batch) {
	if batch == nil || len(batch.Results) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range batch.Results {
		if r.Err != nil {
			sb.WriteString(fmt.Sprintf("✗ %s\n    %v\n", r.Path, r.Err))
			continue
		}
		rec := r.Record
		sb.WriteString(fmt.Sprintf("✓ %s\n", orDash(rec.ResumeName)))
		sb.WriteString(fmt.Sprintf("    %s %s <%s>\n", rec.FirstName, rec.LastName, orDash(rec.Email)))
		sb.WriteString(fmt.Sprintf("    %d jobs, %d schools, experience %s\n",
			len(rec.WorkHistory), len(rec.Education), orDash(rec.Experience)))
		if i < len(batch.Results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("PARSED RESUMES (%d/%d)", len(batch.Records()), len(batch.Results)),
		strings.TrimSuffix(sb.String(), "\n"))
}

// PrintApplications outputs the most recent application log entries.
func (p *Printer) PrintApplications(apps []store.Application) {
	if len(apps) == 0 {
		return
	}

	var sb strings.Builder
	start := max(0, len(apps)-maxItemsToShow)
	for i := len(apps) - 1; i >= start; i-- {
		a := apps[i]
		sb.WriteString(fmt.Sprintf("%s  %s @ %s\n", a.Timestamp.Format("2006-01-02 15:04"), a.Role, orDash(a.Company)))
		sb.WriteString(fmt.Sprintf("    %s  %s\n", a.Portal, orDash(a.Location)))
	}
	if start > 0 {
		sb.WriteString(fmt.Sprintf("... and %d older\n", start))
	}

	p.printBox("APPLICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, n int, item func(int) string) {
	if n == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	count := min(n, maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", item(i)))
	}
	if n > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", n-maxItemsToShow))
	}
}
