package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lturtle/internal/api"
	"github.com/matzehuels/lturtle/pkg/config"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		maxLength int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generate and draw API over HTTP",
		Long: `Serve the HTTP API.

  GET  /healthz
  GET  /v1/presets
  POST /v1/generate
  POST /v1/draw?format=svg|png|pdf|json

Request bodies are JSON pipeline options. Values a request leaves out come
from the loaded configuration, or from the preset the request names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg, maxLength, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().IntVar(&maxLength, "max-length", config.DefaultMaxLength, "largest program a request may generate, in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config, maxLength int, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg.Cache, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := api.New(runner, c.Logger, api.Options{MaxLength: maxLength, Base: &cfg})

	host := cfg.Server.Addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	printKeyValue("URL", StyleLink.Render("http://"+host))
	printKeyValue("Cache", cacheLabel(cfg.Cache, noCache))
	printNewline()

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func cacheLabel(cfg config.CacheConfig, noCache bool) string {
	if noCache {
		return config.CacheNone
	}
	return cfg.Backend
}
