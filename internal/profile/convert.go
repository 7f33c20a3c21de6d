package profile

import (
	"strings"

	"github.com/jonathan/speedyapply/internal/resume"
)

// FromResume builds a new profile from a parsed resume. The profile is
// named after the resume file, or the applicant when the file had no name.
func FromResume(r *resume.Record) *Profile {
	name := r.ResumeName
	if name == "" {
		name = strings.TrimSpace(r.FirstName + " " + r.LastName)
	}
	if name == "" {
		name = "Resume"
	}
	p := New(name)
	p.Data.Personal = Personal{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		Country:   r.Country,
	}
	p.Data.Links = Links{
		LinkedIn:  r.LinkedIn,
		GitHub:    r.GitHub,
		Portfolio: r.Portfolio,
		Twitter:   r.Twitter,
	}
	p.Data.Preferences = Preferences{
		NoticePeriod: r.NoticePeriod,
		CurrentCTC:   r.CurrentCTC,
		ExpectedCTC:  r.ExpectedCTC,
		Experience:   r.Experience,
	}
	p.Data.Profile = Extras{Skills: r.Skills, Summary: r.Summary}
	for _, e := range r.Education {
		p.Data.Education = append(p.Data.Education, Education{
			School:    e.Institution,
			Degree:    e.Degree,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
		})
	}
	for _, w := range r.WorkHistory {
		p.Data.Work = append(p.Data.Work, Work{
			Company:     w.Company,
			Title:       w.Title,
			StartDate:   w.StartDate,
			EndDate:     w.EndDate,
			Description: w.Description,
		})
	}
	return p
}
