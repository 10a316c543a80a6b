// Package api provides the HTTP API for chronicler
package api

import (
	phttp "github.com/chaoss/grimoirelab-chronicler/internal/platform/net/http"

	"github.com/chaoss/grimoirelab-chronicler/internal/modkit"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit/httpkit"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit/module"

	metamod "github.com/chaoss/grimoirelab-chronicler/internal/services/api/meta/module"
	eventizemod "github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/module"
)

// Options are the API options
type Options struct {
	Deps     modkit.Deps
	Eventize eventizemod.Options
	Stack    httpkit.StackOptions
}

// Mount mounts the API service onto the given router: /healthz,
// /v1/meta/*, /v1/sources and /v1/events/{source}, plus /metrics when
// Deps.Metrics is set. r must have no routes yet
func Mount(r phttp.Router, opt Options) {
	deps := opt.Deps.WithDefaults()
	r.Use(httpkit.Heartbeat("/healthz"))

	mods := []module.Module{
		metamod.New(deps),
		eventizemod.New(deps, opt.Eventize),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			deps.Log.Debug().Str("module", m.Name()).Msg("api: mount")
			m.MountRoutes(api)
		}
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}
}
