// Package engine runs scans: it enumerates the candidate controls of a page,
// identifies each against the dictionary, resolves the value from the active
// profile and injects it, falling back to an LLM for controls the dictionary
// does not know.
//
// Every scan reads the store at its own start and works from that snapshot
// only, so overlapping scans never see each other's state. A store that
// cannot be read aborts the scan; nothing is retried.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/jonathan/speedyapply/internal/ai"
	"github.com/jonathan/speedyapply/internal/clock"
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/injector"
	"github.com/jonathan/speedyapply/internal/labels"
	"github.com/jonathan/speedyapply/internal/matcher"
	"github.com/jonathan/speedyapply/internal/platform"
	"github.com/jonathan/speedyapply/internal/profile"
	"github.com/jonathan/speedyapply/internal/store"
)

const (
	// FilledAttr marks a control the engine has written.
	FilledAttr = "data-speedy-filled"
	// FilledBorder outlines dictionary fills.
	FilledBorder = "2px solid #22c55e"
	// AIBorder outlines fills answered by the model.
	AIBorder = "2px solid #a855f7"

	// minAILabelLen is the shortest label worth asking the model about.
	minAILabelLen = 3
)

// Source says how a field's value was found.
type Source string

const (
	SourceDictionary Source = "dictionary"
	SourceAI         Source = "ai"
)

// Field is the outcome for one candidate control.
type Field struct {
	Element *dom.Element
	Label   string
	Key     string
	Score   int
	// Index is the array entry used for education and work keys.
	Index  int
	Value  string
	Source Source
	Filled bool
	// Skipped holds why a matched or eligible field was left alone.
	Skipped string
}

// Report summarises one scan.
type Report struct {
	URL        string
	Domain     string
	Platform   platform.Platform
	ProfileID  string
	Force      bool
	FillActive bool
	Candidates int
	Matches    int
	Filled     int
	AIFilled   int
	Fields     []Field
	// Application is the log entry written by this scan, if any.
	Application *store.Application
}

// ScanOptions tunes one scan.
type ScanOptions struct {
	// Force fills regardless of the global and per-domain switches and
	// refills controls already marked as filled.
	Force bool
}

// Engine scans documents against the profile held in a store.
type Engine struct {
	store     *store.Store
	matcher   *matcher.Matcher
	injector  *injector.Injector
	generator ai.Generator
	clock     clock.Clock
	logger    *slog.Logger

	mu     sync.Mutex
	logged map[string]bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithMatcher replaces the default matcher.
func WithMatcher(m *matcher.Matcher) Option {
	return func(e *Engine) { e.matcher = m }
}

// WithInjector replaces the default injector.
func WithInjector(in *injector.Injector) Option {
	return func(e *Engine) { e.injector = in }
}

// WithGenerator enables the AI fallback. It is only consulted when the
// stored state has AI switched on.
func WithGenerator(g ai.Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithClock sets the clock used for application log timestamps.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an Engine reading profiles from st.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  st,
		clock:  clock.Real(),
		logger: slog.Default(),
		logged: map[string]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.matcher == nil {
		e.matcher = matcher.New(matcher.WithLogger(e.logger))
	}
	if e.injector == nil {
		e.injector = injector.New(injector.WithLogger(e.logger))
	}
	return e
}

// Matcher returns the matcher in use.
func (e *Engine) Matcher() *matcher.Matcher {
	return e.matcher
}

// ScanAndFill runs one scan over doc. Matching always runs and is reported;
// values are written only when opts.Force is set or auto-fill is enabled
// both globally and for the page's domain, and only when a profile is
// active. A store read failure aborts the scan with a *ScanError wrapping
// the store error.
func (e *Engine) ScanAndFill(ctx context.Context, doc *dom.Document, opts ScanOptions) (*Report, error) {
	rep := &Report{
		URL:      doc.URL(),
		Domain:   store.NormalizeDomain(doc.Domain()),
		Platform: platform.Detect(doc.URL()),
		Force:    opts.Force,
	}

	st, err := e.store.Get(ctx)
	if err != nil {
		msg := "profile store unreadable"
		if errors.Is(err, store.ErrUnavailable) {
			msg = "profile store unavailable"
		}
		return nil, &ScanError{URL: rep.URL, Message: msg, Cause: err}
	}

	snap, hasProfile, err := st.ActiveSnapshot()
	if err != nil {
		e.logger.Warn("active profile unreadable", "error", err)
		hasProfile = false
	}
	if active := st.ActiveProfile(); hasProfile && active != nil {
		rep.ProfileID = active.ID
	}
	rep.FillActive = hasProfile && (opts.Force || st.ShouldFill(rep.Domain))
	useAI := rep.FillActive && st.UseOllama && e.generator != nil

	candidates := CollectCandidates(doc)
	rep.Candidates = len(candidates)
	e.logger.Debug("scan started", "url", rep.URL, "candidates", len(candidates), "fill", rep.FillActive, "ai", useAI)

	counts := map[string]int{}
	for _, el := range candidates {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		label, _ := e.matcher.Label(el)
		if matcher.IsEscapeOption(label) {
			continue
		}

		best, ok := e.matcher.Best(el)
		if !ok {
			if useAI && aiEligible(el, label, opts.Force) {
				if err := e.fillWithAI(ctx, doc, el, label, snap, rep); err != nil {
					return rep, err
				}
			}
			continue
		}

		rep.Matches++
		f := Field{Element: el, Label: label, Key: best.Key, Score: best.Score, Source: SourceDictionary}
		if !rep.FillActive {
			f.Skipped = "filling disabled"
			rep.Fields = append(rep.Fields, f)
			continue
		}

		f.Index = counts[best.Key]
		counts[best.Key]++

		switch {
		case !opts.Force && el.Attr(FilledAttr) == "true":
			f.Skipped = "already filled"
		default:
			f.Value = snap.Value(best.Key, f.Index)
			if f.Value == "" {
				f.Skipped = "no profile value"
				e.logger.Debug("matched field has no value", "key", best.Key, "index", f.Index)
				break
			}
			if e.injector.Inject(ctx, el, f.Value, best.Key) {
				markFilled(el, FilledBorder)
				f.Filled = true
				rep.Filled++
			} else {
				f.Skipped = "injection had no effect"
			}
		}
		rep.Fields = append(rep.Fields, f)
	}

	if rep.Matches > 0 || rep.Filled > 0 || rep.AIFilled > 0 {
		app, err := e.logApplication(ctx, doc, rep)
		if err != nil {
			e.logger.Warn("application not logged", "url", rep.URL, "error", err)
		}
		rep.Application = app
	}

	e.logger.Info("scan finished", "url", rep.URL, "candidates", rep.Candidates,
		"matches", rep.Matches, "filled", rep.Filled, "ai_filled", rep.AIFilled)
	return rep, nil
}

func markFilled(el *dom.Element, border string) {
	el.SetAttr(FilledAttr, "true")
	el.SetStyle("border", border)
}

// aiEligible reports whether an unidentified control may be sent to the
// model: an empty, unmarked text input, textarea or select, or an unchecked
// radio whose group has no selection yet, with a label of at least three
// characters.
func aiEligible(el *dom.Element, label string, force bool) bool {
	if utf8.RuneCountInString(label) < minAILabelLen {
		return false
	}
	if el.Attr(FilledAttr) == "true" && !force {
		return false
	}
	switch {
	case el.Tag() == "textarea", el.Tag() == "input" && el.Type() == "text":
		return el.Value() == ""
	case el.Tag() == "select":
		return el.Value() == ""
	case el.Tag() == "input" && el.Type() == "radio":
		for _, m := range el.RadioGroup() {
			if m.Checked() {
				return false
			}
		}
		return true
	}
	return false
}

func (e *Engine) fillWithAI(ctx context.Context, doc *dom.Document, el *dom.Element, label string, snap *profile.Snapshot, rep *Report) error {
	field := ai.Describe(el, label, labels.ResolverFunc(e.matcher.Label))
	prompt := ai.BuildPrompt(ai.PageContext{
		ProfileJSON: string(snap.JSON()),
		PageTitle:   doc.Title(),
		Company:     ai.CompanyFromTitle(doc.Title()),
		Section:     ai.SectionContext(el),
	}, field)

	f := Field{Element: el, Label: label, Source: SourceAI}
	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		e.logger.Warn("ai fallback failed", "label", label, "model", e.generator.Model(), "error", err)
		f.Skipped = "ai unavailable"
		rep.Fields = append(rep.Fields, f)
		return nil
	}

	filled := ai.Apply(ctx, e.injector, el, field, answer)
	if len(filled) == 0 {
		f.Skipped = "ai answer not applicable"
		rep.Fields = append(rep.Fields, f)
		return nil
	}
	for _, target := range filled {
		markFilled(target, AIBorder)
		rep.Fields = append(rep.Fields, Field{
			Element: target,
			Label:   label,
			Value:   ai.Clean(answer),
			Source:  SourceAI,
			Filled:  true,
		})
		rep.AIFilled++
	}
	return nil
}
