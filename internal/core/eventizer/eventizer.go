// Package eventizer turns raw collector items into events and keeps the table of
// eventizers by data source name.
//
// Eventizers register at init time under a dotted namespace. A Registry is the
// name -> factory table discovered from one or more namespaces; Process dispatches
// an item stream to the selected eventizer and returns a lazy event stream.
package eventizer

import (
	"iter"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/event"
)

// Eventizer decomposes one item into its events.
// It returns every event of the item or an error, never a partial list.
// Implementations hold no state across items
type Eventizer interface {
	EventizeItem(Item) ([]event.Event, error)
}

// Eventize runs ez over items, one item at a time.
// The first error, from the input or from ez, is yielded and ends the sequence
func Eventize(ez Eventizer, items iter.Seq2[Item, error]) iter.Seq2[event.Event, error] {
	return func(yield func(event.Event, error) bool) {
		for it, err := range items {
			if err != nil {
				yield(event.Event{}, err)
				return
			}
			evs, err := ez.EventizeItem(it)
			if err != nil {
				yield(event.Event{}, err)
				return
			}
			for _, ev := range evs {
				if !yield(ev, nil) {
					return
				}
			}
		}
	}
}
