package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the model as JSON",
	Long: `Write the full model (profiles and catalog) as a JSON snapshot.

Writes to stdout when no file is given.

Example:
  palate export model.json
  palate export > model.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := engine.Export(out); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if len(args) == 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported model to %s\n", args[0])
	}
	return nil
}
