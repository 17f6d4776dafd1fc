package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/savorworks/palate"
)

var (
	cfgDBPath   string
	cfgFile     string
	cfgInMemory bool
	outputJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "palate",
	Short: "Palate - Hybrid food recommendation engine",
	Long: `Palate is a hybrid food recommendation engine.

It combines content similarity, peer behavior, and situational context
into a single ranked list per user, learning from every interaction.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDBPath, "db-path", "", "Path to local model database (default: ~/.palate/model.db)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&cfgInMemory, "in-memory", false, "Run without durable persistence")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(interactCmd)
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func loadConfig() (palate.Config, error) {
	cfg, err := palate.LoadConfigFile(cfgFile)
	if err != nil {
		return palate.Config{}, err
	}

	// Flags override file and environment
	if cfgDBPath != "" {
		cfg.ModelPath = cfgDBPath
	}
	if cfgInMemory {
		cfg.InMemory = true
	}

	return cfg, nil
}

// newLogger builds the process logger from configuration. CLI commands log
// quietly to stderr; the serve command raises verbosity via log_level.
func newLogger(cfg palate.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// openEngine loads configuration and constructs the engine for one-shot
// commands. The caller must Close it.
func openEngine() (*palate.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return palate.NewEngine(cfg, newLogger(cfg))
}
