package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/savorworks/palate"
)

var interactCmd = &cobra.Command{
	Use:   "interact <user-id>",
	Short: "Record a user interaction",
	Long: `Merge new user activity into a profile.

Example:
  palate interact user_123 --order pizza_001 --order pasta_002 --value 31.50
  palate interact user_123 --prefer thai --prefer spicy
  palate interact user_123 --dietary vegan`,
	Args: cobra.ExactArgs(1),
	RunE: runInteract,
}

var (
	interactOrders  []string
	interactPrefs   []string
	interactValue   float64
	interactDietary []string
)

func init() {
	interactCmd.Flags().StringArrayVar(&interactOrders, "order", nil, "Ordered item ID (repeatable)")
	interactCmd.Flags().StringArrayVar(&interactPrefs, "prefer", nil, "Preference tag to add (repeatable)")
	interactCmd.Flags().Float64Var(&interactValue, "value", 0, "Order value")
	interactCmd.Flags().StringArrayVar(&interactDietary, "dietary", nil, "Dietary restriction to add (repeatable)")
}

func runInteract(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	userID := args[0]
	interaction := palate.Interaction{
		OrderedItems:   interactOrders,
		Preferences:    interactPrefs,
		OrderValue:     interactValue,
		DietaryChanges: interactDietary,
	}

	if err := engine.ApplyInteraction(context.Background(), userID, interaction); err != nil {
		return fmt.Errorf("apply interaction: %w", err)
	}

	prof, ok := engine.Profiles().Get(userID)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Interaction recorded.")
		return nil
	}
	return outputProfile(cmd, prof)
}
