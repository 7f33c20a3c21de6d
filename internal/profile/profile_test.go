package profile

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/speedyapply/internal/resume"
)

func sampleData() Data {
	return Data{
		Personal: Personal{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			City:      "Austin",
			State:     "TX",
			Country:   "USA",
		},
		Links: Links{LinkedIn: "https://linkedin.com/in/jane"},
		Education: []Education{
			{School: "MIT", Degree: "BS", Grade: "3.9"},
			{School: "Stanford", Degree: "MS"},
		},
		Work: []Work{
			{Company: "Acme", Title: "Engineer", StartDate: "2021-08", EndDate: "Present"},
		},
	}
}

func TestSnapshot_Value(t *testing.T) {
	snap, err := NewSnapshot(sampleData())
	require.NoError(t, err)

	tests := []struct {
		key   string
		index int
		want  string
	}{
		{"personal.firstName", 0, "Jane"},
		{"personal.firstName", 3, "Jane"},
		{"personal.fullName", 0, "Jane Doe"},
		{"personal.location", 0, "Austin, TX"},
		{"links.linkedin", 0, "https://linkedin.com/in/jane"},
		{"education.school", 0, "MIT"},
		{"education.school", 1, "Stanford"},
		{"education.school", 2, ""},
		{"education.grade", 0, "3.9"},
		{"education.grade", 1, ""},
		{"work.company", 0, "Acme"},
		{"work.endDate", 0, "Present"},
		{"work.company", -1, ""},
		{"links.github", 0, ""},
		{"nosuch.key", 0, ""},
		{"malformed", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, snap.Value(tt.key, tt.index))
		})
	}
}

func TestSnapshot_FullNameFallbacks(t *testing.T) {
	tests := []struct {
		name        string
		first, last string
		want        string
	}{
		{"both", "Jane", "Doe", "Jane Doe"},
		{"first only", "Jane", "", "Jane"},
		{"last only", "", "Doe", "Doe"},
		{"neither", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := NewSnapshot(Data{Personal: Personal{FirstName: tt.first, LastName: tt.last}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.Value("personal.fullName", 0))
		})
	}
}

func TestSnapshot_LocationFallbacks(t *testing.T) {
	tests := []struct {
		name string
		p    Personal
		want string
	}{
		{"explicit wins", Personal{Location: "Remote", City: "Austin", State: "TX"}, "Remote"},
		{"city and state", Personal{City: "Austin", State: "TX", Country: "USA"}, "Austin, TX"},
		{"city and country", Personal{City: "Pune", Country: "India"}, "Pune, India"},
		{"city only", Personal{City: "Pune"}, "Pune"},
		{"no city", Personal{State: "TX", Country: "USA"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := NewSnapshot(Data{Personal: tt.p})
			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.Value("personal.location", 0))
		})
	}
}

func TestSnapshot_GradeAliasesInStoredJSON(t *testing.T) {
	raw := []byte(`{"education":[{"school":"A","gpa":"8.5"},{"school":"B","score":92},{"school":"C"}],
		"legal":{"authorized":true,"sponsorship":false}}`)
	snap, err := SnapshotJSON(raw)
	require.NoError(t, err)

	assert.Equal(t, "8.5", snap.Value("education.grade", 0))
	assert.Equal(t, "92", snap.Value("education.grade", 1))
	assert.Equal(t, "", snap.Value("education.grade", 2))
	assert.Equal(t, "Yes", snap.Value("legal.authorized", 0))
	assert.Equal(t, "No", snap.Value("legal.sponsorship", 0))
	assert.Equal(t, 3, snap.Count("education"))
	assert.Equal(t, 0, snap.Count("legal"))
}

func TestSnapshot_IsImmutable(t *testing.T) {
	d := sampleData()
	snap, err := NewSnapshot(d)
	require.NoError(t, err)

	d.Personal.FirstName = "Changed"
	d.Work[0].Company = "Other"

	assert.Equal(t, "Jane", snap.Value("personal.firstName", 0))
	assert.Equal(t, "Acme", snap.Value("work.company", 0))

	out := snap.JSON()
	out[0] = 'x'
	assert.Equal(t, "Jane", snap.Value("personal.firstName", 0))
}

func TestSnapshotJSON_Invalid(t *testing.T) {
	_, err := SnapshotJSON([]byte(`{"personal":`))
	assert.Error(t, err)
}

func TestNilSnapshot(t *testing.T) {
	var snap *Snapshot
	assert.Equal(t, "", snap.Value("personal.firstName", 0))
	assert.Equal(t, 0, snap.Count("work"))
	assert.Equal(t, "{}", string(snap.JSON()))
}

func TestProfile_Validate(t *testing.T) {
	p := New("Main")
	p.Data = sampleData()
	require.NoError(t, p.Validate())

	p.Data.Personal.Email = "not-an-email"
	err := p.Validate()
	require.Error(t, err)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))

	p.Data.Personal.Email = ""
	p.Data.Links.GitHub = "github dot com"
	assert.Error(t, p.Validate())

	p.Data.Links.GitHub = ""
	p.Name = ""
	assert.Error(t, p.Validate())
}

func TestFromResume(t *testing.T) {
	rec := &resume.Record{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		City:       "Pune",
		Country:    "India",
		GitHub:     "https://github.com/jane",
		Skills:     "Go, SQL",
		Experience: "5",
		Education: []resume.Education{
			{Degree: "BS", Institution: "MIT", StartDate: "2015-08", EndDate: "2019-05"},
		},
		WorkHistory: []resume.Work{
			{Company: "Acme", Title: "Engineer", StartDate: "2021-08", EndDate: "Present", Description: "• Built things"},
		},
		ResumeName: "jane_backend",
	}

	p := FromResume(rec)

	_, err := uuid.Parse(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane_backend", p.Name)
	assert.Equal(t, "Jane", p.Data.Personal.FirstName)
	assert.Equal(t, "https://github.com/jane", p.Data.Links.GitHub)
	assert.Equal(t, "5", p.Data.Preferences.Experience)
	assert.Equal(t, "Go, SQL", p.Data.Profile.Skills)
	require.Len(t, p.Data.Education, 1)
	assert.Equal(t, "MIT", p.Data.Education[0].School)
	require.Len(t, p.Data.Work, 1)
	assert.Equal(t, "• Built things", p.Data.Work[0].Description)
	assert.NoError(t, p.Validate())

	other := FromResume(&resume.Record{FirstName: "Ada"})
	assert.Equal(t, "Ada", other.Name)
	assert.NotEqual(t, p.ID, other.ID)
}
