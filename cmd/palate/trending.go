package main

import (
	"github.com/spf13/cobra"

	"github.com/savorworks/palate"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending items",
	Long: `List currently trending food items.

Example:
  palate trending
  palate trending --time-range 7d --limit 5 --json`,
	RunE: runTrending,
}

var (
	trendingRange string
	trendingLimit int
)

func init() {
	trendingCmd.Flags().StringVar(&trendingRange, "time-range", "24h", "Analytics window label")
	trendingCmd.Flags().IntVarP(&trendingLimit, "limit", "n", 10, "Maximum number of items")
}

func runTrending(cmd *cobra.Command, args []string) error {
	items := palate.Trending(trendingRange, trendingLimit)
	return outputTrending(cmd, trendingRange, items)
}
