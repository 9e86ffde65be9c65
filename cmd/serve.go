package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/collegecounselor/counselor/resilience"
	"github.com/collegecounselor/counselor/server"
)

// serveCmd runs the local relay server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local relay server",
	Long: `Serve the /api-proxy relay and the notification websocket stream. The
relay forwards API calls to the configured backend and answers with mock
data whenever the backend cannot.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	guard := resilience.NewGuard(logger, dispatcher)
	srv := server.New(server.Config{
		Listen:      cfg.Server.Listen,
		UpstreamURL: cfg.API.BaseURL,
		Timeout:     cfg.API.Timeout,
	}, dispatcher, guard, logger)

	return srv.Start(ctx)
}
