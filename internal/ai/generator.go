package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"
)

// Generator answers a prompt with free text.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	// Model returns the model name in use.
	Model() string
	Close() error
}

// NewGenerator builds the generator for cfg.Provider wrapped in a circuit
// breaker. apiKey is required for Gemini and ignored for Ollama.
func NewGenerator(ctx context.Context, cfg *Config, apiKey string, logger *slog.Logger) (Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.withDefaults()

	var g Generator
	switch cfg.Provider {
	case ProviderOllama:
		g = NewOllama(cfg)
	case ProviderGemini:
		gem, err := NewGemini(ctx, cfg, apiKey)
		if err != nil {
			return nil, err
		}
		g = gem
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
	return WithBreaker(g, cfg, logger), nil
}

// Breaker stops calling a provider that keeps failing, so a scan over a
// long form does not wait on every field for a server that is down.
type Breaker struct {
	next Generator
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps g. After cfg.BreakerFailures consecutive failures calls
// fail fast with gobreaker.ErrOpenState until cfg.BreakerCooldown passes.
func WithBreaker(g Generator, cfg *Config, logger *slog.Logger) *Breaker {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	failures := cfg.BreakerFailures
	settings := gobreaker.Settings{
		Name:        "ai-" + string(cfg.Provider),
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// Cancellation says nothing about the provider's health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("ai circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &Breaker{next: g, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) Generate(ctx context.Context, p Prompt) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Generate(ctx, p)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (b *Breaker) Model() string { return b.next.Model() }

func (b *Breaker) Close() error { return b.next.Close() }

// State reports the breaker state: closed, half-open or open.
func (b *Breaker) State() string { return b.cb.State().String() }
