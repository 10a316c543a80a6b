package eventizer

import (
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/event"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/config/raw"
)

// BundledNamespace holds the eventizers shipped with chronicler
const BundledNamespace = "chronicler.events"

// Factory builds a fresh eventizer for one Process call
type Factory func() Eventizer

type registration struct {
	namespace string
	name      string
	factory   Factory
}

// process-wide registration table, filled from init functions
var (
	mu   sync.RWMutex
	regs []registration
)

// Register adds an eventizer under namespace. It panics on an empty name or a nil
// factory, both are programming errors caught at init
func Register(namespace, name string, f Factory) {
	if name == "" || namespace == "" || f == nil {
		panic("eventizer: Register needs a namespace, a name and a factory")
	}
	mu.Lock()
	regs = append(regs, registration{namespace: namespace, name: name, factory: f})
	mu.Unlock()
}

// Registry maps data source names to eventizer factories
type Registry struct {
	factories map[string]Factory
}

// Discover builds a Registry from every registration whose namespace is one of
// namespaces or nested under one (a.b matches a.b.c, not a.bc). Namespaces are
// applied in order and a later registration of a name replaces an earlier one
func Discover(namespaces ...string) *Registry {
	mu.RLock()
	defer mu.RUnlock()

	r := &Registry{factories: map[string]Factory{}}
	for _, ns := range namespaces {
		ns = strings.TrimSpace(ns)
		if ns == "" {
			continue
		}
		for _, reg := range regs {
			if reg.namespace == ns || strings.HasPrefix(reg.namespace, ns+".") {
				r.factories[reg.name] = reg.factory
			}
		}
	}
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Namespaces returns the bundled namespace followed by the extra ones configured
// in CHRONICLER_EVENTIZERS (comma separated)
func Namespaces() []string {
	return append([]string{BundledNamespace}, raw.New().Prefix("CHRONICLER_").GetCSV("EVENTIZERS")...)
}

// Default is the process registry, discovered once over Namespaces
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = Discover(Namespaces()...) })
	return defaultReg
}

// Names lists the registered data source names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Has reports whether name has a registered eventizer
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// New builds the eventizer registered for name
func (r *Registry) New(name string) (Eventizer, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, UnknownSourceError(name)
	}
	return f(), nil
}

// Process resolves name and returns the lazy event stream over items.
// An unknown name fails here, before any item is read
func (r *Registry) Process(name string, items iter.Seq2[Item, error]) (iter.Seq2[event.Event, error], error) {
	ez, err := r.New(name)
	if err != nil {
		return nil, err
	}
	return Eventize(ez, items), nil
}
