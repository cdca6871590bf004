package commands

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Dan9191/tax-ledger/internal/buildinfo"
	"github.com/Dan9191/tax-ledger/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Running the binary without a subcommand starts the server.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tax-ledger",
		Short:   "Tax payment ledger service",
		Version: fmt.Sprintf("%s (commit: %s)", buildinfo.Version, buildinfo.Commit),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newDueDatesCommand())

	return rootCmd
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// openDB loads configuration and connects to the database
func openDB() (*config.Config, *logrus.Logger, *sql.DB, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return cfg, logger, db, nil
}
