// Package profile defines the applicant profile the engine fills forms from,
// and the immutable per-scan Snapshot used to look values up by dictionary key.
package profile

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Personal holds identity and address details.
type Personal struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob,omitempty"`
	Location  string `json:"location"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// Links are profile URLs.
type Links struct {
	LinkedIn  string `json:"linkedin" validate:"omitempty,url"`
	GitHub    string `json:"github" validate:"omitempty,url"`
	Portfolio string `json:"portfolio" validate:"omitempty,url"`
	Twitter   string `json:"twitter" validate:"omitempty,url"`
}

// Legal holds work authorization answers.
type Legal struct {
	Authorized     string `json:"authorized"`
	Sponsorship    string `json:"sponsorship"`
	PassportNumber string `json:"passportNumber,omitempty"`
	PassportExpiry string `json:"passportExpiry,omitempty"`
	PANNumber      string `json:"panNumber,omitempty"`
}

// EEOC holds voluntary self-identification answers.
type EEOC struct {
	Gender     string `json:"gender"`
	Race       string `json:"race"`
	Veteran    string `json:"veteran"`
	Disability string `json:"disability"`
	Pronouns   string `json:"pronouns,omitempty"`
}

// Preferences holds job-search answers.
type Preferences struct {
	NoticePeriod      string `json:"noticePeriod"`
	CurrentCTC        string `json:"currentCtc"`
	ExpectedCTC       string `json:"expectedCtc"`
	Experience        string `json:"experience"`
	TechExperience    string `json:"techExperience,omitempty"`
	Referral          string `json:"referral,omitempty"`
	Relocation        string `json:"relocation,omitempty"`
	RelevantType      string `json:"relevantType,omitempty"`
	PreferredLocation string `json:"preferredLocation,omitempty"`
	HoldingOffers     string `json:"holdingOffers,omitempty"`
	CareerGaps        string `json:"careerGaps,omitempty"`
}

// Extras holds free-text answers.
type Extras struct {
	Skills          string `json:"skills"`
	ReasonForChange string `json:"reasonForChange"`
	Summary         string `json:"summary"`
}

// Documents holds long-form documents.
type Documents struct {
	CoverLetter string `json:"coverLetter"`
}

// Education is one school entry. Dates are YYYY-MM.
type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	Grade     string `json:"grade,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Work is one employment entry. Dates are YYYY-MM or "Present".
type Work struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Data is the fillable content of a profile. Its JSON shape is what
// dictionary keys address: "personal.email", "work.company" and so on.
type Data struct {
	Personal    Personal    `json:"personal"`
	Links       Links       `json:"links"`
	Legal       Legal       `json:"legal"`
	EEOC        EEOC        `json:"eeoc"`
	Preferences Preferences `json:"preferences"`
	Profile     Extras      `json:"profile"`
	Documents   Documents   `json:"documents"`
	Education   []Education `json:"education" validate:"dive"`
	Work        []Work      `json:"work" validate:"dive"`
}

// Profile is a named Data set. A store may hold several.
type Profile struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Data Data   `json:"data"`
}

// New returns an empty profile with a fresh id.
func New(name string) *Profile {
	return &Profile{
		ID:   uuid.NewString(),
		Name: name,
		Data: Data{Education: []Education{}, Work: []Work{}},
	}
}

var validate = validator.New()

// Validate checks required fields and email and URL formats.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return &ValidationError{Profile: p.Name, Cause: err}
	}
	return nil
}
