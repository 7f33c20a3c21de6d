package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/speedyapply/internal/ai"
	"github.com/jonathan/speedyapply/internal/clock"
	"github.com/jonathan/speedyapply/internal/config"
	"github.com/jonathan/speedyapply/internal/engine"
	"github.com/jonathan/speedyapply/internal/injector"
	"github.com/jonathan/speedyapply/internal/matcher"
	"github.com/jonathan/speedyapply/internal/observability"
	"github.com/jonathan/speedyapply/internal/store"
)

// Environment variables read when the matching flag or config value is unset.
const (
	envStore     = "SPEEDYAPPLY_STORE"
	envDSN       = "SPEEDYAPPLY_DSN"
	envGeminiKey = "GEMINI_API_KEY"
	envOllamaURL = "OLLAMA_URL"
)

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	storeKind  string
	dsn        string
	verbose    bool

	cfg     config.Config
	logger  *slog.Logger
	out     io.Writer
	printer *observability.Printer
	clock   clock.Clock
}

func newRootCmd() *cobra.Command {
	a := &app{clock: clock.Real()}
	root := &cobra.Command{
		Use:   "speedyapply",
		Short: "Fill job application forms from a stored profile",
		Long: "speedyapply identifies the fields of a job application page, fills them from the " +
			"active profile and, for fields it cannot identify, optionally asks a language model.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a JSON or YAML config file")
	pf.StringVar(&a.storeKind, "store", "", "Store backend: memory, file, sqlite or postgres (env "+envStore+")")
	pf.StringVar(&a.dsn, "dsn", "", "Store file path or database URL (env "+envDSN+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Print debug logs")

	root.AddCommand(
		newFillCmd(a),
		newIdentifyCmd(a),
		newLiveCmd(a),
		newParseResumeCmd(a),
		newProfileCmd(a),
		newApplicationsCmd(a),
	)
	return root
}

// setup resolves the configuration: flags win over environment variables,
// which win over the config file, which wins over defaults.
func (a *app) setup(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	a.printer = observability.NewPrinter(a.out)

	var cfg config.Config
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	if v := firstNonEmpty(a.storeKind, os.Getenv(envStore)); v != "" {
		cfg.Store = v
	}
	if v := firstNonEmpty(a.dsn, os.Getenv(envDSN)); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv(envOllamaURL); v != "" {
		cfg.OllamaURL = v
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(envGeminiKey)
	}
	if a.verbose {
		cfg.Verbose = true
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if merged.DSN == "" {
		merged.DSN = defaultDSN(merged.Store)
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	a.cfg = merged

	level := slog.LevelInfo
	if merged.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// defaultDSN places file and sqlite stores in the user config directory.
func defaultDSN(kind string) string {
	var name string
	switch kind {
	case "file":
		name = "state.json"
	case "sqlite":
		name = "state.db"
	default:
		return ""
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "speedyapply", name)
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	if a.cfg.Store == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(a.cfg.DSN), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	backend, err := store.Open(ctx, a.cfg.Store, a.cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", a.cfg.Store, err)
	}
	a.logger.Debug("store opened", "kind", a.cfg.Store, "dsn", a.cfg.DSN)
	return store.New(backend, store.WithLogger(a.logger)), nil
}

func (a *app) newMatcher() *matcher.Matcher {
	return matcher.New(
		matcher.WithWeights(a.cfg.MatcherWeights()),
		matcher.WithThreshold(a.cfg.Threshold),
		matcher.WithLogger(a.logger),
	)
}

// newEngine wires the engine for st. The generator is only built when the
// stored AI switch is on; the returned func releases it.
func (a *app) newEngine(ctx context.Context, st *store.Store) (*engine.Engine, func(), error) {
	opts := []engine.Option{
		engine.WithMatcher(a.newMatcher()),
		engine.WithInjector(injector.New(
			injector.WithClock(a.clock),
			injector.WithSettle(a.cfg.PollInterval.Std(), a.cfg.DropdownSettle.Std()),
			injector.WithLogger(a.logger),
		)),
		engine.WithClock(a.clock),
		engine.WithLogger(a.logger),
	}
	release := func() {}

	state, err := st.Get(ctx)
	if err != nil {
		return nil, release, err
	}
	if state.UseOllama {
		model := state.OllamaModel
		if ai.Provider(a.cfg.AIProvider) == ai.ProviderGemini {
			model = ""
		}
		gen, err := ai.NewGenerator(ctx, a.cfg.AIConfig(model), a.cfg.APIKey, a.logger)
		if err != nil {
			a.logger.Warn("AI fallback disabled", "error", err)
		} else {
			opts = append(opts, engine.WithGenerator(gen))
			release = func() { _ = gen.Close() }
		}
	}
	return engine.New(st, opts...), release, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
