package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/savorworks/palate"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a model snapshot",
	Long: `Merge a JSON model snapshot into the local model.

Strategies:
  skip     keep local records on conflict (default)
  replace  overwrite local records on conflict
  merge    union profile lists, keep fresher scalar fields

Example:
  palate import model.json
  palate import model.json --strategy merge`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importStrategy string

func init() {
	importCmd.Flags().StringVar(&importStrategy, "strategy", "skip", "Conflict strategy: skip, replace, merge")
}

func runImport(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	result, err := engine.Import(f, palate.MergeStrategy(importStrategy))
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if outputJSON {
		return outputAsJSON(cmd, result)
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Imported %d profiles and %d items (created %d, merged %d, skipped %d).\n",
		result.Profiles, result.Items, result.Created, result.Merged, result.Skipped)
	return nil
}
