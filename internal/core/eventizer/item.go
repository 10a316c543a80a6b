package eventizer

import "encoding/json"

// Item is one raw record as written by the Perceval collector. Only the envelope is
// typed here; Data is decoded by the eventizer that owns the backend
type Item struct {
	UUID            string          `json:"uuid"`
	BackendName     string          `json:"backend_name"`
	BackendVersion  string          `json:"backend_version,omitempty"`
	Category        string          `json:"category"`
	Origin          string          `json:"origin"`
	Tag             string          `json:"tag,omitempty"`
	Timestamp       json.Number     `json:"timestamp,omitempty"`
	UpdatedOn       json.Number     `json:"updated_on"`
	PercevalVersion string          `json:"perceval_version,omitempty"`
	Data            json.RawMessage `json:"data"`
}
