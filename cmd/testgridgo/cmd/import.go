package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <report.json|dir>...",
	Short: "Import test run reports into the database",
	Long: `Imports one or more run report files (or directories of .json reports).
Each report is one transaction; a malformed report or one naming an unknown
target is rejected and counted without aborting the rest of the batch.
Re-importing a report replaces its prior attempts rather than duplicating
them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	summary, err := a.ImportReports(cmd.Context(), args)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "batch %s: %d report(s) imported, %d attempt(s) recorded, %d rejected\n",
		summary.Batch, summary.Imported, summary.Attempts, summary.Rejected)
	return nil
}
