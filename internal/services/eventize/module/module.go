// Package module wires eventize into the API using modkit
package module

import (
	modkit "github.com/chaoss/grimoirelab-chronicler/internal/modkit"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit/httpkit"
	"github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/domain"
	eventizehttp "github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/http"
	"github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/service"
)

// Ports exposed by the eventize module
type Ports struct {
	Runner  domain.RunnerPort
	Sources domain.SourcesPort
}

// Module implements the eventize service module
type Module struct {
	deps  modkit.Deps
	opts  Options
	built modkit.Built
	ports Ports
}

// New constructs the eventize module over deps.Registry
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	deps = deps.WithDefaults()
	b := modkit.Build(append([]modkit.Option{modkit.WithName("eventize")}, opts...)...)

	svc := service.New(deps.Registry, deps.Metrics, service.Config{MaxLineBytes: o.MaxLineBytes})
	return &Module{
		deps:  deps,
		opts:  o,
		built: b,
		ports: Ports{Runner: svc, Sources: svc},
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Options returns the defaults the module was built with
func (m *Module) Options() Options { return m.opts }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		eventizehttp.Register(rr, m.ports.Runner, m.ports.Sources, eventizehttp.Defaults{
			SkipInvalid:  m.opts.SkipInvalid,
			MaxLineBytes: m.opts.MaxLineBytes,
		})
	})
}
