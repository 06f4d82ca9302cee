package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	practicesession "github.com/jeopardy-trainer/backend/internal/domain/practice_session"
	"github.com/jeopardy-trainer/backend/internal/domain/questionbank"
	"github.com/jeopardy-trainer/backend/internal/grader"
	"github.com/jeopardy-trainer/backend/internal/infrastructure/config"
	"github.com/jeopardy-trainer/backend/internal/service"
	"github.com/jeopardy-trainer/backend/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "server",
	Short:        "Jeopardy-style quiz trainer",
	Long:         "Serves quiz sessions drawn from markdown question banks and tracks how often each question was graded.",
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default ./config.yaml when present)")
	rootCmd.PersistentFlags().String("db", "", "Exposure database location (overrides DATABASE_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(lintCmd)
}

// loadConfig reads the configuration and applies the --db override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DatabaseURL = db
	}
	return cfg, nil
}

// newLoader reads banks from BANK_DIR using BANK_CATALOG, or the built-in
// catalog when none is configured.
func newLoader(cfg *config.Config) (*questionbank.Loader, error) {
	catalog := questionbank.DefaultCatalog()
	if cfg.BankCatalog != "" {
		c, err := questionbank.LoadCatalog(cfg.BankCatalog)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	return questionbank.NewLoader(os.DirFS(cfg.BankDir), catalog), nil
}

// app bundles the dependencies shared by the commands that need the store.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  store.ExposureStore
	quiz   *service.QuizService
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	loader, err := newLoader(cfg)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	quiz := service.NewQuizService(
		loader,
		s,
		practicesession.NewSelector(practicesession.NewLockedRand(time.Now().UnixNano())),
		grader.ExactMatch{},
		logger,
	)
	return &app{cfg: cfg, logger: logger, store: s, quiz: quiz}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
