package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vk/testgridgo/internal/ctxlog"
	"github.com/vk/testgridgo/internal/httpserve"
)

var (
	serveDir  string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a generated site directory for local preview",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveDir, "dir", "site", "generated site directory to serve")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "listen port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx := ctxlog.WithLogger(cmd.Context(), a.Logger())
	return httpserve.Serve(ctx, serveDir, servePort)
}
