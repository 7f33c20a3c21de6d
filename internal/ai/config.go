// Package ai is the LLM fallback for form fields the dictionary cannot
// identify: it builds a prompt from the profile and page context, asks a
// Generator (local Ollama or Gemini) for an answer and applies it.
package ai

import "time"

// Provider names an LLM backend.
type Provider string

const (
	// ProviderOllama is a local Ollama server.
	ProviderOllama Provider = "ollama"
	// ProviderGemini is Google Gemini.
	ProviderGemini Provider = "gemini"
)

const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "qwen2.5-coder:3b"
	DefaultGeminiModel = "gemini-2.5-flash-lite"
	DefaultTimeout     = 60 * time.Second
)

// Config selects and tunes a Generator.
type Config struct {
	Provider Provider
	Model    string
	// BaseURL is the Ollama server address.
	BaseURL string
	Timeout time.Duration
	// Temperature is passed to the provider; low values keep answers stable.
	Temperature float32
	// BreakerFailures consecutive failures open the circuit for
	// BreakerCooldown, after which one trial request is let through.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig returns the local Ollama configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderOllama,
		Model:           DefaultOllamaModel,
		BaseURL:         DefaultOllamaURL,
		Timeout:         DefaultTimeout,
		Temperature:     0.1,
		BreakerFailures: 3,
		BreakerCooldown: 30 * time.Second,
	}
}

// DefaultGeminiConfig returns the Gemini configuration.
func DefaultGeminiConfig() *Config {
	c := DefaultConfig()
	c.Provider = ProviderGemini
	c.Model = DefaultGeminiModel
	c.BaseURL = ""
	return c
}

// WithModel returns a copy of c using model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}

func (c *Config) withDefaults() *Config {
	var def *Config
	if c.Provider == ProviderGemini {
		def = DefaultGeminiConfig()
	} else {
		def = DefaultConfig()
	}
	out := *c
	if out.Provider == "" {
		out.Provider = def.Provider
	}
	if out.Model == "" {
		out.Model = def.Model
	}
	if out.BaseURL == "" {
		out.BaseURL = def.BaseURL
	}
	if out.Timeout <= 0 {
		out.Timeout = def.Timeout
	}
	if out.BreakerFailures == 0 {
		out.BreakerFailures = def.BreakerFailures
	}
	if out.BreakerCooldown <= 0 {
		out.BreakerCooldown = def.BreakerCooldown
	}
	return &out
}
