// Package labels discovers the human-readable label of a form control.
//
// Resolution is best effort. A Heuristic runs an ordered list of strategies
// and returns the first non-empty text; callers treat a miss as "no label",
// never as an error.
package labels

import (
	"log/slog"
	"strings"

	"github.com/jonathan/speedyapply/internal/dom"
)

// Resolver returns the label text for an element.
type Resolver interface {
	Resolve(el *dom.Element) (string, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(el *dom.Element) (string, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(el *dom.Element) (string, bool) {
	return f(el)
}

// Strategy is one named resolution step.
type Strategy struct {
	Name    string
	Resolve func(el *dom.Element) (string, bool)
}

const (
	// DefaultMaxDepth bounds the ancestor levels of the sibling walk.
	DefaultMaxDepth = 6
	// DefaultMaxTextLen is the exclusive upper bound on sibling label length.
	DefaultMaxTextLen = 150
	// minPlaceholderLen is the exclusive lower bound on placeholder fallbacks.
	minPlaceholderLen = 3
)

// genericAria holds aria-label values that say nothing about the field.
var genericAria = map[string]bool{
	"select":        true,
	"select one":    true,
	"choose":        true,
	"select...":     true,
	"select option": true,
	"required":      true,
	"optional":      true,
}

// siblingMarkers are sibling texts the walk steps over.
var siblingMarkers = map[string]bool{
	"required":   true,
	"*":          true,
	"select one": true,
}

var nonLabelTags = map[string]bool{
	"script":   true,
	"style":    true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"button":   true,
}

// Heuristic is the default Resolver.
type Heuristic struct {
	strategies []Strategy
	logger     *slog.Logger
}

// Option configures a Heuristic.
type Option func(*Heuristic)

// WithLogger sets the logger used for per-strategy debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Heuristic) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithStrategies replaces the strategy list.
func WithStrategies(strategies ...Strategy) Option {
	return func(h *Heuristic) {
		h.strategies = strategies
	}
}

// NewHeuristic returns a resolver running DefaultStrategies.
func NewHeuristic(opts ...Option) *Heuristic {
	h := &Heuristic{
		strategies: DefaultStrategies(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// DefaultStrategies returns the seven strategies in resolution order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "label-for", Resolve: ExplicitLabel},
		{Name: "wrapping-label", Resolve: WrappingLabel},
		{Name: "aria-label", Resolve: AriaLabel},
		{Name: "aria-labelledby", Resolve: AriaLabelledBy},
		{Name: "list-item-heading", Resolve: ListItemHeading},
		{Name: "sibling-walk", Resolve: SiblingWalk},
		{Name: "placeholder", Resolve: Placeholder},
	}
}

// Strategies returns the configured strategies.
func (h *Heuristic) Strategies() []Strategy {
	return h.strategies
}

// Resolve implements Resolver.
func (h *Heuristic) Resolve(el *dom.Element) (string, bool) {
	label, _, ok := h.ResolveWith(el)
	return label, ok
}

// ResolveWith also reports which strategy produced the label.
func (h *Heuristic) ResolveWith(el *dom.Element) (label, strategy string, ok bool) {
	if el == nil {
		return "", "", false
	}
	for _, s := range h.strategies {
		if text, found := s.Resolve(el); found && strings.TrimSpace(text) != "" {
			h.logger.Debug("label resolved", "element", el.String(), "strategy", s.Name, "label", text)
			return text, s.Name, true
		}
	}
	return "", "", false
}

// ExplicitLabel reads <label for=id> in the element's tree scope.
func ExplicitLabel(el *dom.Element) (string, bool) {
	id := el.ID()
	if id == "" {
		return "", false
	}
	label := el.Root().LabelFor(id)
	if label == nil {
		return "", false
	}
	return nonEmpty(label.Text())
}

// WrappingLabel reads an ancestor <label>, without the text of the controls
// nested in it.
func WrappingLabel(el *dom.Element) (string, bool) {
	parent := el.Parent()
	if parent == nil {
		return "", false
	}
	label := parent.Closest("label")
	if label == nil {
		return "", false
	}
	return nonEmpty(label.TextExcluding("input, select, textarea"))
}

// AriaLabel reads aria-label unless it is a generic placeholder value.
func AriaLabel(el *dom.Element) (string, bool) {
	aria := el.Attr("aria-label")
	if aria == "" || genericAria[strings.ToLower(strings.TrimSpace(aria))] {
		return "", false
	}
	return nonEmpty(aria)
}

// AriaLabelledBy concatenates the text of every referenced element.
func AriaLabelledBy(el *dom.Element) (string, bool) {
	ids := strings.Fields(el.Attr("aria-labelledby"))
	if len(ids) == 0 {
		return "", false
	}
	root := el.Root()
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if ref := root.ElementByID(id); ref != nil {
			if text := ref.Text(); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return nonEmpty(strings.Join(parts, " "))
}

// ListItemHeading handles question containers such as Google Forms: the
// nearest role=listitem ancestor's heading or question title.
func ListItemHeading(el *dom.Element) (string, bool) {
	item := el.Closest(`[role="listitem"]`)
	if item == nil {
		return "", false
	}
	if heading := item.Query(`[role="heading"]`); heading != nil {
		return nonEmpty(heading.Text())
	}
	if title := item.Query(`.freebirdFormviewerComponentsQuestionBaseTitle, [jsname="wSAScd"]`); title != nil {
		return nonEmpty(title.Text())
	}
	return "", false
}

// SiblingWalk scans preceding siblings of the element and of up to
// DefaultMaxDepth ancestors for short label-like text.
func SiblingWalk(el *dom.Element) (string, bool) {
	return siblingWalk(el, DefaultMaxDepth, DefaultMaxTextLen)
}

// NewSiblingWalk returns a sibling walk with custom bounds.
func NewSiblingWalk(maxDepth, maxTextLen int) Strategy {
	return Strategy{
		Name: "sibling-walk",
		Resolve: func(el *dom.Element) (string, bool) {
			return siblingWalk(el, maxDepth, maxTextLen)
		},
	}
}

func siblingWalk(el *dom.Element, maxDepth, maxTextLen int) (string, bool) {
	container := el
	for depth := 0; container != nil && depth < maxDepth; depth++ {
		for sib := container.PreviousSibling(); sib != nil; sib = sib.PreviousSibling() {
			if sib.StyleHidden() {
				continue
			}
			text := sib.Text()
			lower := strings.ToLower(text)
			if sib.Tag() == "label" {
				return nonEmpty(text)
			}
			if siblingMarkers[lower] {
				continue
			}
			if text != "" && len(text) < maxTextLen && !nonLabelTags[sib.Tag()] && !strings.Contains(lower, "section") {
				return text, true
			}
		}
		container = container.Parent()
		if container == nil || container.Tag() == "body" {
			break
		}
	}
	return "", false
}

// Placeholder falls back to the element's own placeholder when it is longer
// than three characters and is not a "select" prompt.
func Placeholder(el *dom.Element) (string, bool) {
	ph := el.Placeholder()
	if len(strings.TrimSpace(ph)) <= minPlaceholderLen || strings.Contains(strings.ToLower(ph), "select") {
		return "", false
	}
	return ph, true
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
