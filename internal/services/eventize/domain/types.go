package domain

import (
	"io"
	"time"
)

// Request describes one eventize run.
// Input is read to the end and closed when it is an io.Closer
type Request struct {
	RunID        string // empty gets a fresh id
	Source       string
	Input        io.Reader
	Output       io.Writer
	JSONLine     bool
	SkipInvalid  bool
	MaxLineBytes int // 0 uses the service default
}

// Summary reports what a run did, also on failure
type Summary struct {
	RunID       string        `json:"run_id"`
	Source      string        `json:"source"`
	Compression string        `json:"compression"`
	Lines       int           `json:"lines"`
	Items       int           `json:"items"`
	Skipped     int           `json:"skipped"`
	Events      int           `json:"events"`
	Bytes       int64         `json:"bytes"`
	Elapsed     time.Duration `json:"elapsed"`
}
