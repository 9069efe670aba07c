package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/tablesmith/internal/config"
	"github.com/jonathan/tablesmith/internal/llm"
	"github.com/jonathan/tablesmith/internal/materialize"
	"github.com/jonathan/tablesmith/internal/observability"
	"github.com/jonathan/tablesmith/internal/parsing"
	"github.com/jonathan/tablesmith/internal/refinement"
	"github.com/jonathan/tablesmith/internal/store"
	"github.com/jonathan/tablesmith/internal/synthesis"
	"github.com/jonathan/tablesmith/internal/workflow"
)

// Flags shared by every subcommand.
var (
	flagConfig      string
	flagVerbose     bool
	flagAPIKey      string
	flagDataDir     string
	flagStateDir    string
	flagDatabaseURL string
	flagMaxRounds   int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for materialized SQLite databases")
	rootCmd.PersistentFlags().StringVar(&flagStateDir, "state-dir", "", "Directory for job state snapshots")
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL URL for shared job state (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().IntVar(&flagMaxRounds, "max-rounds", 0, "Maximum schema refinement rounds")
}

// loadConfig merges the optional config file, environment and flags.
// Flags win over the file; the file wins over built-in defaults.
func loadConfig() (config.Config, error) {
	flags := config.Config{
		APIKey:      flagAPIKey,
		DataDir:     flagDataDir,
		StateDir:    flagStateDir,
		DatabaseURL: flagDatabaseURL,
		MaxRounds:   flagMaxRounds,
		Verbose:     flagVerbose,
	}

	if flags.APIKey == "" {
		flags.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if flags.DatabaseURL == "" {
		flags.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if flagConfig != "" {
		fileCfg, err := config.LoadConfig(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		flags = flags.MergeWithDefaults(*fileCfg)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	merged := flags.MergeWithDefaults(config.Config{
		DataDir:   filepath.Join(home, ".tablesmith", "databases"),
		StateDir:  filepath.Join(home, ".tablesmith", "jobs"),
		MaxRounds: refinement.DefaultMaxRounds,
	})

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// app bundles the wired components behind each subcommand.
type app struct {
	cfg          config.Config
	logger       *zap.Logger
	printer      *observability.Printer
	orchestrator *workflow.Orchestrator
	builder      *materialize.Builder
	llmClient    llm.Client
	postgres     *store.Postgres
}

// newApp wires the pipeline. withLLM controls whether a live Gemini
// client is required; commands that only read state skip it.
func newApp(ctx context.Context, withLLM bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	jobs, postgres, err := newRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var client llm.Client
	service := synthesis.Service(nil)
	if withLLM {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("API key not set (set GEMINI_API_KEY or use --api-key)")
		}
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		service = synthesis.NewService(client)
	}

	builder := materialize.NewBuilder(cfg.DataDir, logger)
	generator := refinement.NewGenerator(service, cfg.MaxRounds, logger)

	return &app{
		cfg:          cfg,
		logger:       logger,
		printer:      observability.NewPrinter(os.Stdout),
		orchestrator: workflow.NewOrchestrator(parsing.NewParser(), generator, builder, jobs, logger),
		builder:      builder,
		llmClient:    client,
		postgres:     postgres,
	}, nil
}

// newRepository picks the job store: PostgreSQL (with an in-memory read
// cache) when a database URL is configured, the local filesystem otherwise.
func newRepository(ctx context.Context, cfg config.Config) (store.Repository, *store.Postgres, error) {
	if cfg.DatabaseURL != "" {
		postgres, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to job store: %w", err)
		}
		if err := postgres.Migrate(ctx); err != nil {
			postgres.Close()
			return nil, nil, fmt.Errorf("failed to migrate job store: %w", err)
		}
		return store.NewCaching(store.NewMemory(), postgres), postgres, nil
	}

	fs, err := store.NewFS(cfg.StateDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open state directory: %w", err)
	}
	return fs, nil, nil
}

func (a *app) close() {
	if a.llmClient != nil {
		_ = a.llmClient.Close()
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	_ = a.logger.Sync()
}
