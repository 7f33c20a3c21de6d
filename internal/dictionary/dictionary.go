// Package dictionary holds the static table that maps semantic profile keys
// ("section.field") to a free-text pattern and to structural selectors that
// reflect known ATS DOM conventions (Workday data-automation-id, Greenhouse
// job_application[...] names, Google Forms entry.* names).
package dictionary

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Entry is one dictionary row.
type Entry struct {
	// Key is the dot-path into the profile, e.g. "personal.firstName".
	Key string
	// Phrase is the canonical human label for the field.
	Phrase string
	// Selectors are CSS selectors for known page structures.
	Selectors []string

	pattern *regexp2.Regexp
}

// Section returns the part of the key before the dot.
func (e Entry) Section() string {
	section, _, _ := strings.Cut(e.Key, ".")
	return section
}

// Field returns the part of the key after the dot.
func (e Entry) Field() string {
	_, field, _ := strings.Cut(e.Key, ".")
	return field
}

// Pattern returns the source of the case-insensitive pattern.
func (e Entry) Pattern() string {
	return e.pattern.String()
}

// MatchText reports whether the entry's pattern matches text. Empty text
// never matches.
func (e Entry) MatchText(text string) bool {
	if text == "" {
		return false
	}
	ok, err := e.pattern.MatchString(text)
	return err == nil && ok
}

// Dictionary is an ordered, read-only set of entries.
type Dictionary struct {
	entries []Entry
	byKey   map[string]int
}

// New builds a dictionary from rows, compiling every pattern. Keys must be
// unique dot-paths.
func New(rows []Row) (*Dictionary, error) {
	d := &Dictionary{
		entries: make([]Entry, 0, len(rows)),
		byKey:   make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		if !strings.Contains(row.Key, ".") {
			return nil, &EntryError{Key: row.Key, Message: "key must be a section.field path"}
		}
		if _, dup := d.byKey[row.Key]; dup {
			return nil, &EntryError{Key: row.Key, Message: "duplicate key"}
		}
		re, err := regexp2.Compile(row.Pattern, regexp2.IgnoreCase)
		if err != nil {
			return nil, &EntryError{Key: row.Key, Message: fmt.Sprintf("invalid pattern %q", row.Pattern), Cause: err}
		}
		d.byKey[row.Key] = len(d.entries)
		d.entries = append(d.entries, Entry{
			Key:       row.Key,
			Phrase:    row.Phrase,
			Selectors: row.Selectors,
			pattern:   re,
		})
	}
	return d, nil
}

// Row is the uncompiled form of an Entry.
type Row struct {
	Key       string
	Phrase    string
	Pattern   string
	Selectors []string
}

// Entries returns the entries in their stable scoring order.
func (d *Dictionary) Entries() []Entry {
	return d.entries
}

// Lookup returns the entry for key.
func (d *Dictionary) Lookup(key string) (Entry, bool) {
	idx, ok := d.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return d.entries[idx], true
}

// Keys returns every key in order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

var defaultDictionary *Dictionary

func init() {
	d, err := New(DefaultRows)
	if err != nil {
		panic(fmt.Sprintf("dictionary: %v", err))
	}
	defaultDictionary = d
}

// Default returns the built-in dictionary.
func Default() *Dictionary {
	return defaultDictionary
}
