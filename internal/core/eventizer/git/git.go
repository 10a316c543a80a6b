// Package git eventizes commits collected by the Perceval git backend.
//
// One commit item becomes, in order: the commit (or merge) event, one event per
// file action, and one event per identity (author, committer, then trailers).
// Every derived event links back to the commit event and shares its source and time.
package git

import (
	"iter"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/event"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventid"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/identity"
)

// Name is the data source name of this eventizer
const Name = "git"

// Namespace is where the eventizer registers
const Namespace = eventizer.BundledNamespace + ".core"

func init() {
	eventizer.Register(Namespace, Name, func() eventizer.Eventizer { return New() })
}

// Eventizer decomposes git commit items. It is stateless and safe for concurrent use
type Eventizer struct{}

// New returns a git Eventizer
func New() *Eventizer { return &Eventizer{} }

// Eventize decomposes items lazily, stopping at the first error
func (e *Eventizer) Eventize(items iter.Seq2[eventizer.Item, error]) iter.Seq2[event.Event, error] {
	return eventizer.Eventize(e, items)
}

// EventizeItem returns every event of one commit item, or an error and no events
func (e *Eventizer) EventizeItem(it eventizer.Item) ([]event.Event, error) {
	if err := validateItem(it); err != nil {
		return nil, err
	}
	c, err := decodeCommit(it)
	if err != nil {
		return nil, err
	}

	root := event.Event{
		ID:     it.UUID,
		Type:   event.TypeCommit,
		Source: it.Origin,
		Time:   it.UpdatedOn,
		Data:   c.CommitData,
	}
	if len(c.Parents) > 1 {
		root.Type = event.TypeMergeCommit
	}

	out := make([]event.Event, 0, 1+len(c.Files)+4)
	out = append(out, root)
	out = appendActions(out, root, c.Files)
	out = appendIdentities(out, root, c)
	return out, nil
}

// derived starts an event linked to root
func derived(root event.Event, id string, typ event.Type, data event.Payload) event.Event {
	return event.Event{
		ID:          id,
		Type:        typ,
		Source:      root.Source,
		Time:        root.Time,
		LinkedEvent: root.ID,
		Data:        data,
	}
}

func appendActions(out []event.Event, root event.Event, files []event.FileChange) []event.Event {
	for _, fc := range files {
		for _, typ := range actionTypes(fc.Action) {
			data := event.ActionData{
				Filename:     fc.File,
				AddedLines:   fc.Added,
				DeletedLines: fc.Removed,
			}
			if typ == event.TypeActionReplaced || typ == event.TypeActionCopied {
				data.NewFilename = fc.NewFile
			}
			id := eventid.New().
				Str(root.ID).
				Str(string(typ)).
				Str(data.Filename).
				Opt(data.NewFilename).
				Hex()
			out = append(out, derived(root, id, typ, data))
		}
	}
	return out
}

func appendIdentities(out []event.Event, root event.Event, c commit) []event.Event {
	emit := func(role event.Role, ids []identity.Identity) {
		for _, who := range ids {
			id := eventid.New().
				Str(root.ID).
				Str(string(role)).
				Opt(who.Name).
				Opt(who.Email).
				Hex()
			out = append(out, derived(root, id, role.Type(), event.IdentityData{
				Name:   who.Name,
				Email:  who.Email,
				Role:   role,
				Source: Name,
				UUID:   identity.UUID(Name, who),
			}))
		}
	}

	emit(event.RoleAuthoredBy, identity.Parse(c.Author))
	emit(event.RoleCommittedBy, identity.Parse(c.Committer))
	for _, g := range c.trailers {
		ids := make([]identity.Identity, 0, len(g.values))
		for _, v := range g.values {
			if who, ok := identity.ParseTrailer(v); ok {
				ids = append(ids, who)
			}
		}
		emit(g.role, ids)
	}
	return out
}
