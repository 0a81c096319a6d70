package cli

import (
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/nlquery/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/nlquery/internal/adapters/driving/mcp"
	"github.com/custodia-labs/nlquery/internal/logger"
)

var (
	serveAddr    string
	serveNoMCP   bool
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API:

  GET  /health          index and model reachability
  POST /api/translate   {"text": "..."} -> {"data": {...}, "error": null}
  POST /api/search      {"text": "...", "page": 1, "per_page": 10}
  /mcp                  MCP over streamable HTTP

Prompt overrides in ~/.nlquery/prompts are reloaded when they change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().BoolVar(&serveNoMCP, "no-mcp", false, "do not mount the MCP endpoint")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not watch prompt overrides")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	translation, err := translationService()
	if err != nil {
		return err
	}
	settingsSvc, err := settingsService()
	if err != nil {
		return err
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return err
	}

	cfg := httpapi.Config{
		RateLimit:      settings.Server.RateLimit,
		Burst:          settings.Server.Burst,
		RequestTimeout: settings.LLM.Timeout + settings.Index.Timeout,
	}
	if !serveNoMCP {
		mcpServer, err := mcp.NewServer(mcpPorts())
		if err != nil {
			return err
		}
		cfg.Mounts = map[string]http.Handler{"/mcp": mcpServer.Handler()}
	}

	server, err := httpapi.NewServer(httpapi.Ports{
		Translation: translation,
		Search:      services.Search,
		Health:      services.Health,
	}, cfg)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}
	cmd.Printf("nlquery API listening on %s\n", addr)

	g, ctx := errgroup.WithContext(cmd.Context())
	if !serveNoWatch && services.WatchPrompts != nil {
		g.Go(func() error {
			if err := services.WatchPrompts(ctx); err != nil {
				logger.Warn("Prompt reload disabled: %v", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		return server.Run(ctx, addr)
	})
	return g.Wait()
}
