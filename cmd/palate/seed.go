package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savorworks/palate"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data",
	Long: `Load a small demo model: one profile and a varied catalog.

Example:
  palate seed
  palate seed --db-path ./demo.db`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	if err := palate.SeedSampleData(engine); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	stats := engine.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d profiles and %d catalog items.\n",
		stats.ProfileCount, stats.CatalogCount)
	return nil
}
