package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/internal/dev"
	"github.com/vango-dev/fileroutes/pkg/scanner"
)

func devCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Watch the views and regenerate routes on change",
		Long: `Start the development server.

The server watches the views directory, regenerates the route document
on every change and pushes it to clients connected to
` + dev.ReloadPath + `.

Endpoints:
  GET /routes.json   last good route document
  GET /healthz       build status
  GET /metrics       Prometheus metrics

Examples:
  fileroutes dev
  fileroutes dev --port=8080
  fileroutes dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			cache, err := scanner.NewExportCache(1024)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			builder := build.New(cfg, build.Options{
				Cache:   cache,
				Metrics: build.NewMetrics(build.WithRegistry(registry)),
			})

			out := cmd.OutOrStdout()
			server := dev.NewServer(dev.ServerOptions{
				Config:   cfg,
				Builder:  builder,
				Gatherer: registry,
				OnBuildComplete: func(result *build.Result, err error) {
					if err == nil && result.Written {
						success(out, "Wrote %s (%d routes)", relativePath(result.Output), result.RouteCount)
					}
				},
			})

			info(out, "Watching %s", relativePath(builder.Views()))
			info(out, "Serving %s", cfg.DevURL())
			return server.Start(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}
