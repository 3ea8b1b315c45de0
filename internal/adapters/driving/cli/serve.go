package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/tssearch/internal/core/domain"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP search API",
	Long: `Serves chapter search over HTTP until interrupted.

Endpoints:
  GET /api/v1/health
  GET /api/v1/timestamp/search?q=&ids=&tags=&startFrom=&startTo=&startAt=&parts=&page=&perPage=

Requests are rate limited by server.requests_per_second and server.burst.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default server.listen)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireService(searchService != nil, "search"); err != nil {
		return err
	}

	cfg := domain.DefaultSettings().Server
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		cfg = settings.Server
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}

	server, err := httpapi.NewServer(httpapi.Deps{Search: searchService, Health: healthChecker}, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on %s\n", cfg.Listen)
	return server.Run(cmd.Context())
}
