// Package modkit provides module wiring and core deps
package modkit

import (
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit/module"
)

// Module is the common surface for modules that can mount routes and expose ports
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
