// Package domain holds the eventize service contracts
package domain

import (
	"context"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
)

// RunnerPort eventizes one stream of collected items into one stream of events
type RunnerPort interface {
	Run(ctx context.Context, req Request) (Summary, error)
}

// SourcesPort answers which data sources have an eventizer
type SourcesPort interface {
	Sources() []string
	Has(source string) bool
}

// Eventizers is the table the service resolves data sources against.
// *eventizer.Registry satisfies it
type Eventizers interface {
	Names() []string
	Has(name string) bool
	New(name string) (eventizer.Eventizer, error)
}
