// Package cmd contains the roadsafe CLI commands.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roadsafe/roadsafe/internal/config"
	"github.com/roadsafe/roadsafe/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "roadsafe",
	Short: "Road Safety Intervention GPT",
	Long: `roadsafe answers road safety questions from a curated intervention
database. It retrieves candidate interventions, grades their relevance, and
either generates a grounded recommendation with citations or reports that the
database holds nothing suitable.

Running roadsafe without a subcommand starts the HTTP server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads and returns the configuration plus a logger built from it.
func loadConfig() (*config.Config, log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{
		Level: parseLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
