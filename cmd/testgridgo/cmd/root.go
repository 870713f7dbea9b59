package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vk/testgridgo/internal/app"
)

var (
	// Global flags
	dbPath    string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "testgridgo",
	Short: "testgridgo - hardware target catalog and test result cross-reference",
	Long: `testgridgo reconciles a hardware target description tree with automated
test-run reports and renders the combined model as a static website.

The three pipeline stages run independently, in order:

  testgridgo build    --db results.db --tree targets/ --features features.hcl
  testgridgo import   --db results.db reports/
  testgridgo generate --db results.db --out site/`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "results.db", "path to the SQLite database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logging level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
}

// newApp builds the App shared by every verb from the global flags.
func newApp() (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		DBPath:    dbPath,
		LogLevel:  logLevel,
		LogFormat: logFormat,
	})
	if err != nil {
		return nil, err
	}
	return app.NewApp(os.Stderr, cfg), nil
}
