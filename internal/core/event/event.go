// Package event defines the normalized events produced by eventizers and their
// CloudEvents envelope.
package event

import (
	"bytes"
	"encoding/json"
)

// SpecVersion is the CloudEvents version of the envelope
const SpecVersion = "1.0"

// ContentType is the datacontenttype of every payload
const ContentType = "application/json"

// Type is the CloudEvents type attribute
type Type string

// git event types
const (
	TypeCommit      Type = "org.grimoirelab.events.git.commit"
	TypeMergeCommit Type = "org.grimoirelab.events.git.merge"

	TypeActionAdded    Type = "org.grimoirelab.events.git.file.added"
	TypeActionModified Type = "org.grimoirelab.events.git.file.modified"
	TypeActionDeleted  Type = "org.grimoirelab.events.git.file.deleted"
	TypeActionReplaced Type = "org.grimoirelab.events.git.file.replaced"
	TypeActionCopied   Type = "org.grimoirelab.events.git.file.copied"
	TypeActionOther    Type = "org.grimoirelab.events.git.file.other"

	TypeCommitAuthoredBy   Type = "org.grimoirelab.events.git.commit.authored_by"
	TypeCommitCommittedBy  Type = "org.grimoirelab.events.git.commit.committed_by"
	TypeCommitCoAuthoredBy Type = "org.grimoirelab.events.git.commit.co_authored_by"
	TypeCommitSignedOffBy  Type = "org.grimoirelab.events.git.commit.signed_off_by"
)

// Role is the part an identity played in a commit
type Role string

// identity roles
const (
	RoleAuthoredBy   Role = "authored_by"
	RoleCommittedBy  Role = "committed_by"
	RoleCoAuthoredBy Role = "co_authored_by"
	RoleSignedOffBy  Role = "signed_off_by"
)

var roleTypes = map[Role]Type{
	RoleAuthoredBy:   TypeCommitAuthoredBy,
	RoleCommittedBy:  TypeCommitCommittedBy,
	RoleCoAuthoredBy: TypeCommitCoAuthoredBy,
	RoleSignedOffBy:  TypeCommitSignedOffBy,
}

// Type returns the event type of an identity event in this role
func (r Role) Type() Type { return roleTypes[r] }

// Event is one normalized fact derived from a raw item
type Event struct {
	ID     string
	Type   Type
	Source string
	// Time is copied verbatim from the item's updated_on
	Time json.Number
	// LinkedEvent is the id of the commit event this one derives from; empty on the commit event
	LinkedEvent string
	Data        Payload
}

// envelope and every payload declare their fields in key order, so a plain
// marshal already yields sorted keys
type envelope struct {
	Data            Payload     `json:"data"`
	DataContentType string      `json:"datacontenttype"`
	ID              string      `json:"id"`
	LinkedEvent     string      `json:"linked_event,omitempty"`
	Source          string      `json:"source"`
	SpecVersion     string      `json:"specversion"`
	Time            json.Number `json:"time"`
	Type            Type        `json:"type"`
}

// MarshalJSON renders the CloudEvents envelope with sorted keys and no HTML escaping
func (e Event) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(envelope{
		Data:            e.Data,
		DataContentType: ContentType,
		ID:              e.ID,
		LinkedEvent:     e.LinkedEvent,
		Source:          e.Source,
		SpecVersion:     SpecVersion,
		Time:            e.Time,
		Type:            e.Type,
	})
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
