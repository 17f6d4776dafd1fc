package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savorworks/palate"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <user-id>",
	Short: "Get personalized recommendations for a user",
	Long: `Compute a ranked recommendation list for a user.

Example:
  palate recommend user_123
  palate recommend user_123 --limit 5 --time-of-day dinner --weather cold
  palate recommend user_123 --mood comfort --json`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

var (
	recommendLimit     int
	recommendTimeOfDay string
	recommendWeather   string
	recommendLocation  string
	recommendMood      string
)

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 10, "Maximum number of recommendations")
	recommendCmd.Flags().StringVar(&recommendTimeOfDay, "time-of-day", "", "Time slot: breakfast, lunch, dinner, late_night")
	recommendCmd.Flags().StringVar(&recommendWeather, "weather", "", "Weather: hot, cold, rainy")
	recommendCmd.Flags().StringVar(&recommendLocation, "location", "", "Location for local preference matching")
	recommendCmd.Flags().StringVar(&recommendMood, "mood", "", "Mood: happy, sad, stressed, excited, tired")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	params := palate.RecommendParams{
		UserID: args[0],
		Limit:  recommendLimit,
	}

	rctx := palate.Context{
		TimeOfDay: recommendTimeOfDay,
		Weather:   recommendWeather,
		Location:  recommendLocation,
		Mood:      recommendMood,
	}
	if !rctx.IsZero() {
		params.Context = &rctx
	}

	result, err := engine.Recommend(context.Background(), params)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	return outputRecommendResult(cmd, result)
}
