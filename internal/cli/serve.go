package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbver/internal/config"
	"github.com/matzehuels/rbver/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Ruby release list over HTTP",
		Long: `Serve the Ruby release list over HTTP.

Routes:
  GET /               HTML page
  GET /versions.json  the catalog as JSON
  GET /healthz        liveness and cache counters

The catalog is built on the first request and cached for cache_ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, func(cfg *config.Config) {
				if cmd.Flags().Changed("addr") {
					cfg.Listen = addr
				}
			})
			if err != nil {
				return err
			}

			builder, err := c.newBuilder(cfg)
			if err != nil {
				return err
			}

			c.Logger.Debug("configuration",
				"base_url", cfg.BaseURL,
				"root_prefix", cfg.RootPrefix,
				"strategy", cfg.Strategy,
				"cache_ttl", cfg.CacheTTL)

			srv := server.New(builder, c.Logger, server.WithSourceURL(cfg.SourceURL))
			return srv.ListenAndServe(cmd.Context(), cfg.Listen)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVar(&addr, "addr", config.DefaultListen, "listen address")
	return cmd
}
