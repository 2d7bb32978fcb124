// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aidahq/aida/internal/config"
)

var (
	// Global flags
	configPath string
	dbPathFlag string
	verbose    bool
	quiet      bool

	// Resolved values
	cfg    *config.Config
	logger zerolog.Logger
)

// errHandled marks an error that has already been reported to the user. It
// still drives a non-zero exit, but Execute must not print it again.
var errHandled = errors.New("handled")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aida",
	Short: "Aida - a personal task and journal assistant",
	Long: `Aida is a personal task, project, and journal assistant built for
agent-driven use: every operation is callable as a typed function with
structured JSON output and machine-actionable validation errors.

Tasks belong to life roles, optionally to projects, and everything that
happens lands in an append-only journal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't need config or a database
		switch cmd.Name() {
		case "completion", "help", "version", "modules":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if strings.TrimSpace(configPath) != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}

		logger = initLogger(verbose, quiet, cfg.Log)
		return nil
	},
}

// Execute runs the CLI. Errors that were already rendered (JSON envelopes,
// validation reports) are not printed again.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errHandled) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to database file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Log warnings and errors only")
}

// databasePath resolves the database location: flag > config > default.
func databasePath() string {
	if dbPathFlag != "" {
		return dbPathFlag
	}
	return cfg.DatabasePath()
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}
