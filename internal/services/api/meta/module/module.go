// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "github.com/chaoss/grimoirelab-chronicler/internal/modkit"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit/httpkit"

	metahttp "github.com/chaoss/grimoirelab-chronicler/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		deps:      deps.WithDefaults(),
		built:     b,
		startedAt: time.Now(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: "chronicler",
			StartedAt:   m.startedAt,
			Sources:     m.deps.Registry,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
