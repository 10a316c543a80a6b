// Package http provides http transport for eventize
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/chaoss/grimoirelab-chronicler/internal/adapters/output"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	"github.com/chaoss/grimoirelab-chronicler/internal/modkit/httpkit"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/logger"
	"github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/domain"
)

// Response headers and trailers of POST /events/{source}
const (
	HeaderRunID   = "X-Chronicler-Run-ID"
	TrailerError  = "X-Chronicler-Error"
	TrailerEvents = "X-Chronicler-Events"
)

// Defaults applied when a request leaves a query parameter out
type Defaults struct {
	SkipInvalid  bool
	MaxLineBytes int
}

// EventsQuery are the query parameters of POST /events/{source}.
// max_line_bytes accepts 1KiB up to 256MiB
type EventsQuery struct {
	Format       string `query:"format" validate:"omitempty,oneof=jsonl pretty"`
	SkipInvalid  *bool  `query:"skip_invalid"`
	MaxLineBytes *int   `query:"max_line_bytes" validate:"omitempty,min=1024,max=268435456"`
}

// SourcesResponse is the body of GET /sources
type SourcesResponse struct {
	Sources []string `json:"sources"`
}

// Register mounts eventize endpoints on the given router
func Register(r httpkit.Router, runner domain.RunnerPort, sources domain.SourcesPort, def Defaults) {
	h := &handlers{runner: runner, sources: sources, def: def}

	// data sources with a registered eventizer
	httpkit.Get(r, "/sources", h.listSources)

	// streams items in, events out
	r.Post("/events/{source}", h.events)
}

type handlers struct {
	runner  domain.RunnerPort
	sources domain.SourcesPort
	def     Defaults
}

// GET /sources
func (h *handlers) listSources(_ *stdhttp.Request) (any, error) {
	return SourcesResponse{Sources: h.sources.Sources()}, nil
}

// POST /events/{source}
//
// The body is a Perceval item stream, plain or gzip/zstd compressed. Errors found
// before the first event answer with an error envelope; later ones end the
// stream and are reported in the X-Chronicler-Error trailer as an error code
func (h *handlers) events(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	source := httpkit.Param(r, "source")
	if !h.sources.Has(source) {
		httpkit.RespondError(w, r, eventizer.UnknownSourceError(source))
		return
	}
	q, err := httpkit.Query[EventsQuery](r)
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}

	req := domain.Request{
		RunID:        logger.NewRunID(),
		Source:       source,
		Input:        r.Body,
		JSONLine:     q.Format != string(output.FormatPretty),
		SkipInvalid:  h.def.SkipInvalid,
		MaxLineBytes: h.def.MaxLineBytes,
	}
	if q.SkipInvalid != nil {
		req.SkipInvalid = *q.SkipInvalid
	}
	if q.MaxLineBytes != nil {
		req.MaxLineBytes = *q.MaxLineBytes
	}

	sw := &streamWriter{w: w, format: output.FormatFor(req.JSONLine), runID: req.RunID}
	req.Output = sw

	sum, err := h.runner.Run(r.Context(), req)
	if err != nil && !sw.started {
		w.Header().Set(HeaderRunID, req.RunID)
		httpkit.RespondError(w, r, err)
		return
	}

	sw.start()
	if err != nil {
		w.Header().Set(TrailerError, perr.CodeOf(err).String())
	}
	w.Header().Set(TrailerEvents, strconv.Itoa(sum.Events))
}

// streamWriter commits the 200 status on the first write, so that a run which
// fails before producing output can still answer with an error status
type streamWriter struct {
	w       stdhttp.ResponseWriter
	format  output.Format
	runID   string
	started bool
}

func (s *streamWriter) start() {
	if s.started {
		return
	}
	s.started = true
	hdr := s.w.Header()
	hdr.Set("Content-Type", s.format.ContentType())
	hdr.Set(HeaderRunID, s.runID)
	hdr.Add("Trailer", TrailerError)
	hdr.Add("Trailer", TrailerEvents)
	s.w.WriteHeader(stdhttp.StatusOK)
}

func (s *streamWriter) Write(p []byte) (int, error) {
	s.start()
	n, err := s.w.Write(p)
	if f, ok := s.w.(stdhttp.Flusher); ok {
		f.Flush()
	}
	return n, err
}
