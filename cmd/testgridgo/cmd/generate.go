package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var outDir string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the static result site from the database",
	Long: `Renders the catalog and accumulated test results as a static website.
Generation is a pure read: running it twice against an unchanged database
produces byte-identical output.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&outDir, "out", "site", "output directory for the generated site")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	summary, err := a.GenerateSite(cmd.Context(), outDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) written to %s, %d orphaned row(s)\n",
		summary.Pages, outDir, summary.Orphans)
	return nil
}
