package main

import (
	"github.com/chaoss/grimoirelab-chronicler/internal/adapters/metrics"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit/httpkit"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/config"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/logger"
	phttp "github.com/chaoss/grimoirelab-chronicler/internal/platform/net/http"
	"github.com/chaoss/grimoirelab-chronicler/internal/services/api"
	eventizemod "github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/module"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the eventize HTTP API",
		Long:  "Serves POST /v1/events/{source}, GET /v1/sources, /v1/meta/* and /metrics.\nThe listen address is CHRONICLER_SERVE_ADDR (default :8080).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := config.New()
			serveCfg := root.Prefix("CHRONICLER_SERVE_")

			srv := phttp.NewServer(serveCfg)
			api.Mount(srv.Router(), api.Options{
				Deps: modkit.Deps{
					Log:     logger.Named("api"),
					Cfg:     root,
					Metrics: metrics.New(nil),
				},
				Eventize: eventizemod.FromConfig(root),
				Stack:    httpkit.StackFromConfig(serveCfg),
			})
			return srv.Run(cmd.Context())
		},
	}
}
