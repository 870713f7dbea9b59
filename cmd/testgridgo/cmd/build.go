package cmd

import (
	"github.com/spf13/cobra"
)

var (
	treePath      string
	overridesPath string
	featuresPath  string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the target catalog from the device description tree",
	Long: `Parses the device description tree and the optional override file, resolves
target inheritance, derives feature flags, and replaces the catalog in the
database. Test run history is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&treePath, "tree", "", "directory (or single .hcl file) of target descriptions")
	buildCmd.Flags().StringVar(&overridesPath, "overrides", "", "optional override file, same schema as the tree")
	buildCmd.Flags().StringVar(&featuresPath, "features", "", "feature mapping configuration file")
	buildCmd.MarkFlagRequired("tree")
	buildCmd.MarkFlagRequired("features")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.BuildCatalog(cmd.Context(), treePath, overridesPath, featuresPath)
}
