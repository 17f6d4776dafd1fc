package main

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show engine statistics",
	Long: `Display profile and catalog counts plus model store details.

Example:
  palate stats
  palate stats --json`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	return outputStats(cmd, engine.Stats())
}
