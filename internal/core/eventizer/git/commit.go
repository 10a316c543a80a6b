package git

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/event"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
)

// trailer keys, matched case-insensitively
var trailerRoles = map[string]event.Role{
	"co-authored-by": event.RoleCoAuthoredBy,
	"signed-off-by":  event.RoleSignedOffBy,
}

// trailerGroup is every value of one trailer role, in input order
type trailerGroup struct {
	role   event.Role
	values []string
}

// commit is the decoded data of a git item
type commit struct {
	event.CommitData
	trailers []trailerGroup
}

func decodeCommit(it eventizer.Item) (commit, error) {
	data := bytes.TrimSpace(it.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return commit{}, eventizer.MissingFieldError("data")
	}

	var c commit
	if err := json.Unmarshal(data, &c.CommitData); err != nil {
		return commit{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeJSON, "item %s: invalid commit data", it.UUID), "data")
	}
	trailers, err := scanTrailers(data)
	if err != nil {
		return commit{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeJSON, "item %s: invalid commit data", it.UUID), "data")
	}
	c.trailers = trailers
	return c, nil
}

// scanTrailers walks the top-level keys of data in document order. The first key
// of each trailer role fixes the position of its group; later keys of the same
// role (differently cased) append to it
func scanTrailers(data []byte) ([]trailerGroup, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // {
		return nil, err
	}

	var groups []trailerGroup
	at := map[event.Role]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		role, ok := trailerRoles[strings.ToLower(key)]
		if !ok {
			continue
		}
		values, err := trailerValues(raw)
		if err != nil {
			return nil, err
		}
		i, seen := at[role]
		if !seen {
			at[role] = len(groups)
			groups = append(groups, trailerGroup{role: role})
			i = len(groups) - 1
		}
		groups[i].values = append(groups[i].values, values...)
	}
	return groups, nil
}

// trailerValues accepts a list of strings or a single string
func trailerValues(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []string{one}, nil
}
