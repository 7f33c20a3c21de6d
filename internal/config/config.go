// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/speedyapply/internal/ai"
	"github.com/jonathan/speedyapply/internal/matcher"
)

// Config represents the CLI configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Storage
	Store string `json:"store,omitempty" yaml:"store,omitempty" validate:"omitempty,oneof=memory file sqlite postgres"`
	DSN   string `json:"dsn,omitempty" yaml:"dsn,omitempty"` // File path or database URL

	// Matching
	Threshold int              `json:"threshold,omitempty" yaml:"threshold,omitempty" validate:"gte=0"`
	Weights   *matcher.Weights `json:"weights,omitempty" yaml:"weights,omitempty"`

	// Timing
	Debounce       Duration `json:"debounce,omitempty" yaml:"debounce,omitempty" validate:"gte=0"`
	InitialDelay   Duration `json:"initial_delay,omitempty" yaml:"initial_delay,omitempty" validate:"gte=0"`
	DropdownSettle Duration `json:"dropdown_settle,omitempty" yaml:"dropdown_settle,omitempty" validate:"gte=0"`
	PollInterval   Duration `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty" validate:"gte=0"`
	BrowserTimeout Duration `json:"browser_timeout,omitempty" yaml:"browser_timeout,omitempty" validate:"gte=0"`
	RenderSettle   Duration `json:"render_settle,omitempty" yaml:"render_settle,omitempty" validate:"gte=0"`

	// AI fallback
	AIProvider string   `json:"ai_provider,omitempty" yaml:"ai_provider,omitempty" validate:"omitempty,oneof=ollama gemini"`
	AIModel    string   `json:"ai_model,omitempty" yaml:"ai_model,omitempty"`
	OllamaURL  string   `json:"ollama_url,omitempty" yaml:"ollama_url,omitempty" validate:"omitempty,url"`
	AITimeout  Duration `json:"ai_timeout,omitempty" yaml:"ai_timeout,omitempty" validate:"gte=0"`
	APIKey     string   `json:"api_key,omitempty" yaml:"api_key,omitempty"` // Gemini API key

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Store:          "file",
		Threshold:      matcher.DefaultThreshold,
		Debounce:       Duration(500 * time.Millisecond),
		InitialDelay:   Duration(time.Second),
		DropdownSettle: Duration(500 * time.Millisecond),
		PollInterval:   Duration(50 * time.Millisecond),
		BrowserTimeout: Duration(30 * time.Second),
		RenderSettle:   Duration(3 * time.Second),
		AIProvider:     string(ai.ProviderOllama),
		OllamaURL:      ai.DefaultOllamaURL,
		AITimeout:      Duration(ai.DefaultTimeout),
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension (.yaml and .yml are YAML, anything else JSON).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Store == "postgres" && c.DSN == "" {
		return fmt.Errorf("config error: 'dsn' is required for the postgres store")
	}
	if c.Weights != nil {
		w := c.Weights
		for _, v := range []int{w.Selector, w.ID, w.Name, w.Label, w.AriaLabel, w.DataAttr, w.Placeholder} {
			if v < 0 {
				return fmt.Errorf("config error: 'weights' must be non-negative")
			}
		}
	}
	if c.PollInterval > 0 && c.DropdownSettle > 0 && c.PollInterval > c.DropdownSettle {
		return fmt.Errorf("config error: 'poll_interval' must not exceed 'dropdown_settle'")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.DSN == "" {
		result.DSN = defaults.DSN
	}
	if result.AIProvider == "" {
		result.AIProvider = defaults.AIProvider
	}
	if result.AIModel == "" {
		result.AIModel = defaults.AIModel
	}
	if result.OllamaURL == "" {
		result.OllamaURL = defaults.OllamaURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Numeric fields: use default if zero
	if result.Threshold == 0 {
		result.Threshold = defaults.Threshold
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	for _, d := range []struct{ dst, def *Duration }{
		{&result.Debounce, &defaults.Debounce},
		{&result.InitialDelay, &defaults.InitialDelay},
		{&result.DropdownSettle, &defaults.DropdownSettle},
		{&result.PollInterval, &defaults.PollInterval},
		{&result.BrowserTimeout, &defaults.BrowserTimeout},
		{&result.RenderSettle, &defaults.RenderSettle},
		{&result.AITimeout, &defaults.AITimeout},
	} {
		if *d.dst == 0 {
			*d.dst = *d.def
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// MatcherWeights returns the configured weights or the matcher defaults.
func (c *Config) MatcherWeights() matcher.Weights {
	if c.Weights == nil {
		return matcher.DefaultWeights
	}
	return *c.Weights
}

// AIConfig builds the generator configuration. model overrides AIModel when
// set, which is how the per-store model choice reaches the generator.
func (c *Config) AIConfig(model string) *ai.Config {
	var cfg *ai.Config
	if ai.Provider(c.AIProvider) == ai.ProviderGemini {
		cfg = ai.DefaultGeminiConfig()
	} else {
		cfg = ai.DefaultConfig()
		if c.OllamaURL != "" {
			cfg.BaseURL = c.OllamaURL
		}
	}
	if c.AITimeout > 0 {
		cfg.Timeout = c.AITimeout.Std()
	}
	if model == "" {
		model = c.AIModel
	}
	return cfg.WithModel(model)
}
