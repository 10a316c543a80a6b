// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/version"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit/httpkit"
)

// Sources is satisfied by the eventizer registry and the eventize service
type Sources interface {
	Names() []string
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Sources     Sources
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	// mount routes
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string   `json:"name"`
	Started string   `json:"started"`
	Uptime  int64    `json:"uptime"`
	Sources []string `json:"sources"`
}

// GET /meta/health
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GET /meta/ready, ready once at least one eventizer is registered
func (h *handlers) ready(_ *http.Request) (any, error) {
	check := ReadyCheck{Name: "eventizers", Status: "ok"}
	if len(h.sourceNames()) == 0 {
		check.Status, check.Error = "fail", "no eventizer registered"
	}
	return ReadyResponse{
		Status: check.Status,
		Checks: []ReadyCheck{check},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// GET /meta/version
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// GET /meta/service
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
		Sources: h.sourceNames(),
	}, nil
}

func (h *handlers) sourceNames() []string {
	if h.deps.Sources == nil {
		return []string{}
	}
	return h.deps.Sources.Names()
}
