package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: `Start the HTTP conversion service.

Endpoints:
  GET  /healthz
  POST /v1/convert?from=graphml&to=json
  POST /v1/info?format=graphml
  POST /v1/render?format=graphml

Listen address, body limit and cache backend come from the [server] and
[cache] sections of the config file; --addr overrides the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			runner, err := c.newRunner(cmd, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.Logger.Info("cache backend", "backend", backendName(c.cfg.Cache.Backend, noCache))
			srv := server.New(runner, c.Logger, server.Options{
				MaxBody: c.cfg.Server.MaxBody,
				GraphML: c.cfg.GraphML,
				TTL:     c.cfg.Cache.TTL.Duration,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func backendName(backend string, disabled bool) string {
	if disabled || backend == "" {
		return "null"
	}
	return backend
}
