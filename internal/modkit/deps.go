package modkit

import (
	"github.com/chaoss/grimoirelab-chronicler/internal/adapters/metrics"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/config"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log      *logger.Logger
	Cfg      config.Conf
	Registry *eventizer.Registry
	Metrics  *metrics.EventizeMetrics
}

// WithDefaults fills unset deps: the process logger and the default eventizer
// registry. Metrics stay nil (metrics calls are nil-safe)
func (d Deps) WithDefaults() Deps {
	if d.Log == nil {
		d.Log = logger.Get()
	}
	if d.Registry == nil {
		d.Registry = eventizer.Default()
	}
	return d
}
