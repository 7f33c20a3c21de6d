package profile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Snapshot is a read-only view of one profile's data, taken at the start of
// a scan. Later edits to the profile never reach an existing Snapshot.
type Snapshot struct {
	raw []byte
}

// NewSnapshot freezes d.
func NewSnapshot(d Data) (*Snapshot, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot profile: %w", err)
	}
	return &Snapshot{raw: raw}, nil
}

// SnapshotJSON freezes raw profile data JSON as stored, including fields the
// Data type does not declare.
func SnapshotJSON(raw []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("profile data is not valid JSON")
	}
	return &Snapshot{raw: append([]byte(nil), raw...)}, nil
}

// JSON returns a copy of the frozen data.
func (s *Snapshot) JSON() []byte {
	if s == nil {
		return []byte("{}")
	}
	return append([]byte(nil), s.raw...)
}

// gradeAliases are the fields an education entry may carry its grade under.
var gradeAliases = []string{"grade", "gpa", "score"}

// Value resolves a dictionary key ("section.field") to a profile value.
// index selects the entry of array sections (education, work) and is
// ignored for object sections. Composite keys are synthesised:
// personal.fullName from first and last name, personal.location from city,
// state and country when not set. Missing values are "".
func (s *Snapshot) Value(key string, index int) string {
	if s == nil {
		return ""
	}
	switch key {
	case "personal.fullName":
		return s.fullName()
	case "personal.location":
		if v := s.get("personal.location"); v != "" {
			return v
		}
		return s.derivedLocation()
	}

	section, field, ok := strings.Cut(key, ".")
	if !ok || section == "" || field == "" {
		return ""
	}
	sec := gjson.GetBytes(s.raw, gjson.Escape(section))
	if !sec.Exists() {
		return ""
	}
	if !sec.IsArray() {
		return stringOf(sec.Get(gjson.Escape(field)))
	}
	if index < 0 {
		return ""
	}
	item := sec.Get(strconv.Itoa(index))
	if !item.Exists() {
		return ""
	}
	if field == "grade" {
		for _, alias := range gradeAliases {
			if v := stringOf(item.Get(alias)); v != "" {
				return v
			}
		}
		return ""
	}
	return stringOf(item.Get(gjson.Escape(field)))
}

// Count returns the number of entries in an array section, or 0.
func (s *Snapshot) Count(section string) int {
	if s == nil {
		return 0
	}
	sec := gjson.GetBytes(s.raw, gjson.Escape(section))
	if !sec.IsArray() {
		return 0
	}
	return len(sec.Array())
}

func (s *Snapshot) get(path string) string {
	return stringOf(gjson.GetBytes(s.raw, path))
}

func (s *Snapshot) fullName() string {
	first := s.get("personal.firstName")
	last := s.get("personal.lastName")
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}

func (s *Snapshot) derivedLocation() string {
	city := s.get("personal.city")
	if city == "" {
		return ""
	}
	if state := s.get("personal.state"); state != "" {
		return city + ", " + state
	}
	if country := s.get("personal.country"); country != "" {
		return city + ", " + country
	}
	return city
}

// stringOf renders scalars as text and ignores objects, arrays and null.
func stringOf(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number:
		return strings.TrimSpace(r.String())
	case gjson.True:
		return "Yes"
	case gjson.False:
		return "No"
	}
	return ""
}
