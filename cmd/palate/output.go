package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/savorworks/palate"
)

// outputAsJSON writes any value as formatted JSON to the command's stdout.
func outputAsJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputRecommendResult prints a recommendation result in configured format.
func outputRecommendResult(cmd *cobra.Command, result *palate.RecommendResult) error {
	if outputJSON {
		return outputAsJSON(cmd, result)
	}

	out := cmd.OutOrStdout()

	if len(result.Recommendations) == 0 {
		fmt.Fprintln(out, "No recommendations available.")
		return nil
	}

	fmt.Fprintf(out, "Recommendations for %s (method: %s, confidence: %.2f):\n\n",
		result.UserID, result.Method, result.Confidence)

	for i, rec := range result.Recommendations {
		name := rec.Name
		if name == "" {
			name = rec.ItemID
		}
		marker := ""
		if rec.IsNewToUser {
			marker = "  [new]"
		}
		fmt.Fprintf(out, "%2d. %s (%.3f)%s\n", i+1, name, rec.TotalScore, marker)
		if len(rec.Reasons) > 0 {
			fmt.Fprintf(out, "    %s\n", strings.Join(rec.Reasons, "; "))
		}
	}

	return nil
}

// outputProfile prints a profile summary after an interaction.
func outputProfile(cmd *cobra.Command, prof *palate.UserProfile) error {
	if outputJSON {
		return outputAsJSON(cmd, prof)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Profile: %s\n", prof.UserID)
	fmt.Fprintf(out, "  Preferences: %s\n", strings.Join(prof.Preferences, ", "))
	fmt.Fprintf(out, "  Dietary: %s\n", strings.Join(prof.DietaryRestrictions, ", "))
	fmt.Fprintf(out, "  History: %d items\n", len(prof.OrderHistory))
	fmt.Fprintf(out, "  Avg order value: %.2f\n", prof.AvgOrderValue)
	return nil
}

// outputTrending prints the trending list in configured format.
func outputTrending(cmd *cobra.Command, timeRange string, items []palate.TrendingItem) error {
	if outputJSON {
		return outputAsJSON(cmd, map[string]any{"time_range": timeRange, "items": items})
	}

	out := cmd.OutOrStdout()

	if len(items) == 0 {
		fmt.Fprintln(out, "No trending items.")
		return nil
	}

	fmt.Fprintf(out, "Trending (%s):\n\n", timeRange)
	for i, item := range items {
		fmt.Fprintf(out, "%2d. %s\n", i+1, item.Name)
		fmt.Fprintf(out, "    score %.1f | %d orders | +%.1f%% | $%.2f | %.1f stars\n",
			item.TrendingScore, item.OrderCount24h, item.GrowthRate, item.Price, item.Rating)
	}

	return nil
}

// outputStats prints engine statistics in configured format.
func outputStats(cmd *cobra.Command, stats palate.EngineStats) error {
	if outputJSON {
		return outputAsJSON(cmd, stats)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Profiles:      %d\n", stats.ProfileCount)
	fmt.Fprintf(out, "Catalog items: %d\n", stats.CatalogCount)
	fmt.Fprintf(out, "Requests:      %d (fallbacks: %d)\n", stats.Requests, stats.Fallbacks)
	fmt.Fprintf(out, "Interactions:  %d\n", stats.Interactions)
	if stats.ModelPath != "" {
		fmt.Fprintf(out, "Model:         %s (schema v%s)\n", stats.ModelPath, stats.SchemaVersion)
	} else {
		fmt.Fprintln(out, "Model:         in-memory only")
	}
	return nil
}
