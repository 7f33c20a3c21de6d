package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/speedyapply/internal/profile"
)

// DefaultOllamaModel is used when AI is on and no model was chosen.
const DefaultOllamaModel = "qwen2.5-coder:3b"

// Application is one entry of the application log.
type Application struct {
	ID        string    `json:"id"`
	URL       string    `json:"site"`
	Domain    string    `json:"domain"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	Portal    string    `json:"portal"`
	Timestamp time.Time `json:"timestamp"`
}

// State is everything the extension persists, stored as one JSON blob.
type State struct {
	Profiles        []profile.Profile `json:"profiles"`
	ActiveProfileID string            `json:"activeProfileId,omitempty"`
	// LegacyProfile is the single profile written by versions without
	// multi-profile support.
	LegacyProfile   json.RawMessage `json:"profile,omitempty"`
	AutoFillEnabled bool            `json:"isAutoFillEnabled"`
	PageSettings    map[string]bool `json:"pageSpecificSettings"`
	UseOllama       bool            `json:"useOllama"`
	OllamaModel     string          `json:"ollamaModel,omitempty"`
	Applications    []Application   `json:"applicationLog"`
}

// NewState returns the state of a fresh install: no profiles and filling
// disabled everywhere.
func NewState() *State {
	return &State{
		Profiles:     []profile.Profile{},
		PageSettings: map[string]bool{},
		Applications: []Application{},
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	raw, err := json.Marshal(s)
	if err != nil {
		// State holds only JSON-safe values.
		panic(err)
	}
	out := NewState()
	if err := json.Unmarshal(raw, out); err != nil {
		panic(err)
	}
	out.normalize()
	return out
}

func (s *State) normalize() {
	if s.Profiles == nil {
		s.Profiles = []profile.Profile{}
	}
	if s.PageSettings == nil {
		s.PageSettings = map[string]bool{}
	}
	if s.Applications == nil {
		s.Applications = []Application{}
	}
}

// ActiveProfile returns the profile scans fill from: the profile whose id is
// ActiveProfileID, else the legacy single profile, else nil.
func (s *State) ActiveProfile() *profile.Profile {
	for i := range s.Profiles {
		if s.Profiles[i].ID == s.ActiveProfileID && s.ActiveProfileID != "" {
			p := s.Profiles[i]
			return &p
		}
	}
	if len(s.LegacyProfile) > 0 && string(s.LegacyProfile) != "null" {
		var d profile.Data
		if err := json.Unmarshal(s.LegacyProfile, &d); err == nil {
			return &profile.Profile{ID: "legacy", Name: "Default", Data: d}
		}
	}
	return nil
}

// ActiveSnapshot freezes the active profile's data for one scan. Legacy
// profiles are frozen from their stored JSON so undeclared fields survive.
func (s *State) ActiveSnapshot() (*profile.Snapshot, bool, error) {
	for i := range s.Profiles {
		if s.Profiles[i].ID == s.ActiveProfileID && s.ActiveProfileID != "" {
			snap, err := profile.NewSnapshot(s.Profiles[i].Data)
			return snap, err == nil, err
		}
	}
	if len(s.LegacyProfile) > 0 && string(s.LegacyProfile) != "null" {
		snap, err := profile.SnapshotJSON(s.LegacyProfile)
		return snap, err == nil, err
	}
	return nil, false, nil
}

// FindProfile returns the index of the profile with the given id or -1.
func (s *State) FindProfile(id string) int {
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			return i
		}
	}
	return -1
}

// AddProfile appends p and makes it active when nothing is active yet.
func (s *State) AddProfile(p profile.Profile) {
	s.Profiles = append(s.Profiles, p)
	if s.ActiveProfileID == "" || s.FindProfile(s.ActiveProfileID) < 0 {
		s.ActiveProfileID = p.ID
	}
}

// NormalizeDomain lowercases a host and strips a leading "www.".
func NormalizeDomain(host string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
}

// PageEnabled reports whether filling was switched on for domain.
func (s *State) PageEnabled(domain string) bool {
	return s.PageSettings[NormalizeDomain(domain)]
}

// SetPageEnabled switches filling for one domain.
func (s *State) SetPageEnabled(domain string, on bool) {
	if s.PageSettings == nil {
		s.PageSettings = map[string]bool{}
	}
	s.PageSettings[NormalizeDomain(domain)] = on
}

// ShouldFill reports whether an unforced scan on domain may fill: auto-fill
// must be on globally and for the domain.
func (s *State) ShouldFill(domain string) bool {
	return s.AutoFillEnabled && s.PageEnabled(domain)
}

// Model returns the Ollama model, defaulting to DefaultOllamaModel.
func (s *State) Model() string {
	if s.OllamaModel == "" {
		return DefaultOllamaModel
	}
	return s.OllamaModel
}
