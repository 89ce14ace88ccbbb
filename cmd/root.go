package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codescope/internal/config"
	"codescope/internal/output"
)

var (
	flagConfig       string
	flagPatterns     string
	flagObservations string
	flagLogLevel     string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "codescope",
	Short:         "Project context analysis and pattern training for AI coding assistants",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = *loaded

		// Flags beat both the file and the environment.
		if flagPatterns != "" {
			cfg.PatternsPath = flagPatterns
		}
		if flagObservations != "" {
			cfg.ObservationsDir = flagObservations
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Logs go to stderr only: stdout carries rendered context and, in
		// MCP mode, the stdio framing.
		zerolog.SetGlobalLevel(cfg.Level())
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default none; built-in defaults under ~/.codescope)")
	rootCmd.PersistentFlags().StringVar(&flagPatterns, "patterns", "", "pattern catalog path (default ~/.codescope/patterns.json)")
	rootCmd.PersistentFlags().StringVar(&flagObservations, "observations", "", "observation archive directory (default ~/.codescope/observations)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}
