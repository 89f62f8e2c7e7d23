package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ogulcanaydogan/budget-intake/internal/config"
	"github.com/ogulcanaydogan/budget-intake/pkg/collector"
	"github.com/ogulcanaydogan/budget-intake/pkg/prompt"
	"github.com/ogulcanaydogan/budget-intake/pkg/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	cfgFile   string
	outputDir string
)

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Collect budget figures into CSV files",
	Long: `intake asks for annual income, taxes and savings, a list of monthly
expenses and a donation level, and writes each group as one row to
budget.csv, spending.csv and donation.csv in the output directory.
Existing files are never overwritten.

Settings come from ~/.intake/config.yaml or ./config.yaml (or --config).
INTAKE_* environment variables override them, for example
INTAKE_OUTPUT_DIR or INTAKE_PROMPT_SENTINEL, and a .env file in the
working directory is loaded first. The run journal is off unless
journal.enabled (INTAKE_JOURNAL_ENABLED) is set.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCollect,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.intake/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "dir", "d", "", "output directory (default from config)")
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	return cfg, nil
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// initJournal opens the run journal. A journal that cannot be opened is
// logged and skipped.
func initJournal(cfg *config.Config, logger *slog.Logger) storage.Journal {
	if !cfg.Journal.Enabled {
		return nil
	}
	j, err := storage.NewSQLite(cfg.Journal.Path)
	if err != nil {
		logger.Warn("journal unavailable", "path", cfg.Journal.Path, "error", err)
		return nil
	}
	return j
}

func runCollect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())

	journal := initJournal(cfg, logger)
	if journal != nil {
		defer journal.Close()
	}

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout(), prompt.Options{
		Sentinel: cfg.Prompt.Sentinel,
		Kind:     cfg.Kind(),
	})

	c := collector.New(p, storage.NewDirOutput(cfg.Output.Dir), journal, collector.Options{
		CRLF:      cfg.Output.CRLF,
		Preflight: cfg.Output.Preflight,
		OutputDir: cfg.Output.Dir,
		Kind:      cfg.Kind(),
	}, logger)

	results, err := c.Run(cmd.Context())
	for _, r := range results {
		logger.Info("phase finished",
			"phase", r.Phase,
			"state", r.State.String(),
			"location", r.Location,
			"fields", r.FieldCount,
		)
	}
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	return nil
}
