package git

import (
	"strings"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/event"
)

var actionLetters = map[rune]event.Type{
	'A': event.TypeActionAdded,
	'M': event.TypeActionModified,
	'D': event.TypeActionDeleted,
	'R': event.TypeActionReplaced,
	'C': event.TypeActionCopied,
}

// actionTypes maps a git status code to its event types.
//
// Any code starting with C is a single copy action.
// Merge commits report one letter per parent ("MR": modified against the first
// parent, renamed against the second), so each distinct letter is one action, in
// code order. Similarity scores ("R100", "C075") are ignored. Letters with no
// event of their own (T, U, X, B) and empty codes fall back to the other-action
// type; a file change is never dropped
func actionTypes(code string) []event.Type {
	if strings.HasPrefix(code, "C") {
		return []event.Type{event.TypeActionCopied}
	}
	var out []event.Type
	seen := map[event.Type]bool{}
	for _, r := range code {
		if r >= '0' && r <= '9' {
			continue
		}
		typ, ok := actionLetters[r]
		if !ok {
			typ = event.TypeActionOther
		}
		if !seen[typ] {
			seen[typ] = true
			out = append(out, typ)
		}
	}
	if len(out) == 0 {
		out = append(out, event.TypeActionOther)
	}
	return out
}
