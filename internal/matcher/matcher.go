// Package matcher maps a candidate form control to a dictionary key by
// summing weighted signals over every entry and keeping the best score.
package matcher

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jonathan/speedyapply/internal/dictionary"
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/labels"
)

// Weights are the points each signal adds to an entry's score.
type Weights struct {
	Selector    int `json:"selector" yaml:"selector"`
	ID          int `json:"id" yaml:"id"`
	Name        int `json:"name" yaml:"name"`
	Label       int `json:"label" yaml:"label"`
	AriaLabel   int `json:"aria_label" yaml:"aria_label"`
	DataAttr    int `json:"data_attr" yaml:"data_attr"`
	Placeholder int `json:"placeholder" yaml:"placeholder"`
}

// DefaultWeights ranks what a person sees (label, aria-label) above
// conventional attributes (id, name, data ids), and those above coincidental
// hints (selectors, placeholder).
var DefaultWeights = Weights{
	Selector:    20,
	ID:          40,
	Name:        40,
	Label:       100,
	AriaLabel:   100,
	DataAttr:    50,
	Placeholder: 30,
}

// DefaultThreshold is the minimum score for a match.
const DefaultThreshold = 10

// Signal names reported in Result.Signals.
const (
	SignalSelector    = "selector"
	SignalID          = "id"
	SignalName        = "name"
	SignalLabel       = "label"
	SignalAriaLabel   = "aria-label"
	SignalDataAttr    = "data-attr"
	SignalPlaceholder = "placeholder"
)

var otherResponse = regexp.MustCompile(`(?i)other response`)

// IsEscapeOption reports whether a label marks a "type your own answer"
// choice ("Other", "Other response") that must never be scored or filled.
func IsEscapeOption(label string) bool {
	return otherResponse.MatchString(label) || strings.EqualFold(strings.TrimSpace(label), "other")
}

// Result is the score of one entry for one element.
type Result struct {
	Key     string
	Score   int
	Signals []string
}

// Matcher scores elements against a dictionary.
type Matcher struct {
	dict      *dictionary.Dictionary
	resolver  labels.Resolver
	weights   Weights
	threshold int
	logger    *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithDictionary replaces the built-in dictionary.
func WithDictionary(d *dictionary.Dictionary) Option {
	return func(m *Matcher) { m.dict = d }
}

// WithResolver replaces the label resolver.
func WithResolver(r labels.Resolver) Option {
	return func(m *Matcher) { m.resolver = r }
}

// WithWeights replaces the signal weights.
func WithWeights(w Weights) Option {
	return func(m *Matcher) { m.weights = w }
}

// WithThreshold replaces the match threshold.
func WithThreshold(threshold int) Option {
	return func(m *Matcher) { m.threshold = threshold }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New returns a Matcher using the default dictionary, heuristic label
// resolver, weights and threshold unless overridden.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		dict:      dictionary.Default(),
		weights:   DefaultWeights,
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.resolver == nil {
		m.resolver = labels.NewHeuristic(labels.WithLogger(m.logger))
	}
	return m
}

// Dictionary returns the dictionary in use.
func (m *Matcher) Dictionary() *dictionary.Dictionary {
	return m.dict
}

// Threshold returns the match threshold.
func (m *Matcher) Threshold() int {
	return m.threshold
}

// Label resolves the element's label with the configured resolver.
func (m *Matcher) Label(el *dom.Element) (string, bool) {
	return m.resolver.Resolve(el)
}

// Identify returns the best-scoring key at or above the threshold. Escape
// options and elements without signals return false.
func (m *Matcher) Identify(el *dom.Element) (string, bool) {
	best, ok := m.Best(el)
	if !ok {
		return "", false
	}
	return best.Key, true
}

// Best returns the winning Result. The first entry to reach the maximum
// keeps it; later entries must score strictly higher.
func (m *Matcher) Best(el *dom.Element) (Result, bool) {
	sig, ok := m.signals(el)
	if !ok {
		return Result{}, false
	}
	var best Result
	found := false
	for _, entry := range m.dict.Entries() {
		r := m.score(entry, el, sig)
		if r.Score > best.Score && r.Score >= m.threshold {
			best = r
			found = true
		}
	}
	if found {
		m.logger.Debug("field identified", "element", el.String(), "key", best.Key, "score", best.Score)
	}
	return best, found
}

// Score returns every entry with a non-zero score, in dictionary order.
func (m *Matcher) Score(el *dom.Element) []Result {
	sig, ok := m.signals(el)
	if !ok {
		return nil
	}
	var out []Result
	for _, entry := range m.dict.Entries() {
		if r := m.score(entry, el, sig); r.Score > 0 {
			out = append(out, r)
		}
	}
	return out
}

// signals holds the element's lower-cased text channels.
type signals struct {
	id, name, placeholder, label, aria, dataID, testID string
}

func (m *Matcher) signals(el *dom.Element) (signals, bool) {
	if el == nil {
		return signals{}, false
	}
	label, _ := m.resolver.Resolve(el)
	if IsEscapeOption(label) {
		return signals{}, false
	}
	lower := strings.ToLower
	return signals{
		id:          lower(el.ID()),
		name:        lower(el.Name()),
		placeholder: lower(el.Placeholder()),
		label:       lower(label),
		aria:        lower(el.Attr("aria-label")),
		dataID:      lower(el.Attr("data-automation-id")),
		testID:      lower(el.Attr("data-test-id")),
	}, true
}

func (m *Matcher) score(entry dictionary.Entry, el *dom.Element, sig signals) Result {
	r := Result{Key: entry.Key}
	add := func(hit bool, weight int, name string) {
		if hit {
			r.Score += weight
			r.Signals = append(r.Signals, name)
		}
	}
	add(matchesAny(el, entry.Selectors), m.weights.Selector, SignalSelector)
	add(entry.MatchText(sig.id), m.weights.ID, SignalID)
	add(entry.MatchText(sig.name), m.weights.Name, SignalName)
	add(entry.MatchText(sig.label), m.weights.Label, SignalLabel)
	add(entry.MatchText(sig.aria), m.weights.AriaLabel, SignalAriaLabel)
	add(entry.MatchText(sig.dataID) || entry.MatchText(sig.testID), m.weights.DataAttr, SignalDataAttr)
	add(entry.MatchText(sig.placeholder), m.weights.Placeholder, SignalPlaceholder)
	return r
}

func matchesAny(el *dom.Element, selectors []string) bool {
	for _, sel := range selectors {
		if el.Matches(sel) {
			return true
		}
	}
	return false
}
