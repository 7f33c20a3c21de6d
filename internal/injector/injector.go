// Package injector writes profile values into form controls so that the
// page's own framework observes the change.
//
// Values go through the native value setter (dom.Element.SetValue), never a
// page-installed own-property setter, and are followed by synthetic
// input/change/blur events. Every path is best effort: Inject reports
// whether the element now holds the value and never returns an error.
package injector

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/speedyapply/internal/clock"
	"github.com/jonathan/speedyapply/internal/dom"
)

const (
	// DefaultPollInterval is how often a custom dropdown is re-checked for
	// rendered options.
	DefaultPollInterval = 50 * time.Millisecond
	// DefaultSettleTimeout bounds the wait for a custom dropdown's options.
	// Renderers slower than this are missed.
	DefaultSettleTimeout = 500 * time.Millisecond
)

// Strategy injects a value into elements of one Kind.
type Strategy interface {
	Inject(ctx context.Context, in *Injector, el *dom.Element, value, key string) bool
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(ctx context.Context, in *Injector, el *dom.Element, value, key string) bool

// Inject implements Strategy.
func (f StrategyFunc) Inject(ctx context.Context, in *Injector, el *dom.Element, value, key string) bool {
	return f(ctx, in, el, value, key)
}

// DefaultStrategies returns the built-in strategy table.
func DefaultStrategies() map[Kind]Strategy {
	return map[Kind]Strategy{
		TextLike:       StrategyFunc(injectText),
		Select:         StrategyFunc(injectSelect),
		Radio:          StrategyFunc(injectRadio),
		Checkbox:       StrategyFunc(injectCheckbox),
		CustomDropdown: StrategyFunc(injectDropdown),
	}
}

// Injector dispatches to a Strategy per Kind.
type Injector struct {
	clock        clock.Clock
	pollInterval time.Duration
	settle       time.Duration
	strategies   map[Kind]Strategy
	logger       *slog.Logger
}

// Option configures an Injector.
type Option func(*Injector)

// WithClock sets the clock used for dropdown settle polling.
func WithClock(c clock.Clock) Option {
	return func(in *Injector) { in.clock = c }
}

// WithSettle sets the dropdown poll interval and maximum wait.
func WithSettle(interval, maxWait time.Duration) Option {
	return func(in *Injector) {
		if interval > 0 {
			in.pollInterval = interval
		}
		if maxWait >= 0 {
			in.settle = maxWait
		}
	}
}

// WithStrategy overrides the strategy for one kind.
func WithStrategy(kind Kind, s Strategy) Option {
	return func(in *Injector) { in.strategies[kind] = s }
}

// WithLogger sets the logger. No-ops are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Injector) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// New returns an Injector with the default strategies, the real clock and
// the default settle timing.
func New(opts ...Option) *Injector {
	in := &Injector{
		clock:        clock.Real(),
		pollInterval: DefaultPollInterval,
		settle:       DefaultSettleTimeout,
		strategies:   DefaultStrategies(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Inject writes value into el using the strategy for its Kind. key is the
// matched dictionary key and drives date formatting and typing simulation;
// it may be empty for AI-generated values.
func (in *Injector) Inject(ctx context.Context, el *dom.Element, value, key string) bool {
	if el == nil || value == "" {
		return false
	}
	kind := Classify(el)
	s, ok := in.strategies[kind]
	if !ok {
		in.logger.Debug("injection skipped", "element", el.String(), "kind", kind.String(), "key", key)
		return false
	}
	if !s.Inject(ctx, in, el, value, key) {
		in.logger.Debug("injection no-op", "element", el.String(), "kind", kind.String(), "key", key)
		return false
	}
	return true
}

// Poll calls cond immediately and then every interval until it returns true
// or maxWait has elapsed on c. It reports whether cond succeeded.
func Poll(ctx context.Context, c clock.Clock, interval, maxWait time.Duration, cond func() bool) bool {
	if cond() {
		return true
	}
	if interval <= 0 {
		return false
	}
	for waited := time.Duration(0); waited < maxWait; waited += interval {
		if err := c.Sleep(ctx, interval); err != nil {
			return false
		}
		if cond() {
			return true
		}
	}
	return false
}

// ApplyValue focuses el, writes v with the native setter, fires
// input/change/blur and blurs it.
func ApplyValue(el *dom.Element, v string) {
	el.Focus()
	el.SetValue(v)
	TriggerEvents(el)
	el.Blur()
}

// TypeText simulates a keystroke for the final character of v before writing
// it, for autocomplete widgets that only react to keyboard input.
func TypeText(el *dom.Element, v string) {
	el.Focus()
	key := ""
	if r := []rune(v); len(r) > 0 {
		key = string(r[len(r)-1])
	}
	for _, typ := range []string{"keydown", "keypress", "input", "keyup"} {
		el.Dispatch(dom.KeyEvent(typ, key))
	}
	el.SetValue(v)
	el.Dispatch(dom.NewEvent("input"))
	el.Dispatch(dom.NewEvent("change"))
}

// TriggerEvents fires bubbling, composed input, change and blur events.
func TriggerEvents(el *dom.Element) {
	for _, typ := range []string{"input", "change", "blur"} {
		el.Dispatch(dom.NewEvent(typ))
	}
}

// typingKeys mark fields that are usually search or autocomplete boxes.
var typingKeys = []string{"school", "university", "company", "location"}

func wantsTyping(el *dom.Element, key string) bool {
	hit := false
	for _, k := range typingKeys {
		if strings.Contains(key, k) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	return el.Role() == "combobox" || el.Attr("aria-autocomplete") == "list" || el.Type() == "text"
}
