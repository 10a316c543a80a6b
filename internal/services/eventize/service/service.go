// Package service implements the eventize runner: items in, events out
package service

import (
	"context"
	"io"
	"time"

	"github.com/chaoss/grimoirelab-chronicler/internal/adapters/metrics"
	"github.com/chaoss/grimoirelab-chronicler/internal/adapters/output"
	"github.com/chaoss/grimoirelab-chronicler/internal/adapters/perceval"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/logger"
	"github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/domain"

	"github.com/rs/zerolog"
)

// Config for the eventize service
type Config struct {
	MaxLineBytes int
}

// Service implements domain.RunnerPort and domain.SourcesPort
type Service struct {
	Eventizers domain.Eventizers
	Metrics    *metrics.EventizeMetrics
	Cfg        Config
}

// New constructs a new eventize service; m may be nil
func New(ez domain.Eventizers, m *metrics.EventizeMetrics, cfg Config) *Service {
	if cfg.MaxLineBytes <= 0 {
		cfg.MaxLineBytes = perceval.DefaultMaxLineBytes
	}
	return &Service{Eventizers: ez, Metrics: m, Cfg: cfg}
}

// Sources lists the data sources with a registered eventizer, sorted
func (s *Service) Sources() []string { return s.Eventizers.Names() }

// Has reports whether source has a registered eventizer
func (s *Service) Has(source string) bool { return s.Eventizers.Has(source) }

// Run reads items from req.Input, eventizes them with the eventizer of
// req.Source and writes the events to req.Output.
//
// An unknown source fails before any input is read. Items fail fast unless
// req.SkipInvalid is set, in which case malformed lines and items rejected by
// the eventizer are logged and skipped. Events produced before a failure are
// still flushed to req.Output
func (s *Service) Run(ctx context.Context, req domain.Request) (domain.Summary, error) {
	ctx = logger.WithRun(ctx, req.RunID)
	sum := domain.Summary{RunID: logger.RunID(ctx), Source: req.Source}
	log := logger.C(ctx).With().Str("source", req.Source).Logger()

	ez, err := s.Eventizers.New(req.Source)
	if err != nil {
		closeInput(req.Input)
		return sum, err
	}

	maxLine := req.MaxLineBytes
	if maxLine <= 0 {
		maxLine = s.Cfg.MaxLineBytes
	}
	rd, err := perceval.NewReader(req.Input, perceval.WithMaxLineBytes(maxLine))
	if err != nil {
		closeInput(req.Input)
		return sum, err
	}
	defer func() {
		if cerr := rd.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("eventize: close input")
		}
	}()
	sum.Compression = string(rd.Compression())

	out := output.NewWriter(req.Output, output.FormatFor(req.JSONLine))
	start := time.Now()
	log.Debug().
		Str("compression", sum.Compression).
		Bool("json_line", req.JSONLine).
		Bool("skip_invalid", req.SkipInvalid).
		Msg("eventize: start")

	err = s.consume(ctx, ez, rd, out, req, &sum, &log)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}

	sum.Events = out.Count()
	sum.Lines, _, sum.Bytes = rd.Stats()
	sum.Elapsed = time.Since(start)
	s.Metrics.Run(req.Source, start)

	evt := log.Info()
	if err != nil {
		evt = log.Error().Err(err).Str("code", perr.CodeOf(err).String())
	}
	evt.Int("lines", sum.Lines).
		Int("items", sum.Items).
		Int("skipped", sum.Skipped).
		Int("events", sum.Events).
		Int64("bytes", sum.Bytes).
		Dur("elapsed", sum.Elapsed).
		Msg("eventize: done")
	return sum, err
}

func (s *Service) consume(
	ctx context.Context,
	ez eventizer.Eventizer,
	rd *perceval.Reader,
	out *output.Writer,
	req domain.Request,
	sum *domain.Summary,
	log *zerolog.Logger,
) error {
	for it, err := range rd.Items(ctx) {
		if err == nil {
			err = s.eventizeItem(ez, it, out, req.Source)
		}
		if err == nil {
			sum.Items++
			s.Metrics.Item(req.Source, metrics.StatusOK)
			continue
		}
		if req.SkipInvalid && Skippable(err) {
			sum.Skipped++
			s.Metrics.Item(req.Source, metrics.StatusSkipped)
			log.Warn().Err(err).Str("uuid", it.UUID).Msg("eventize: item skipped")
			continue
		}
		s.Metrics.Item(req.Source, metrics.StatusFailed)
		return err
	}
	return nil
}

// eventizeItem decomposes one item and writes its events in order
func (s *Service) eventizeItem(ez eventizer.Eventizer, it eventizer.Item, out *output.Writer, source string) error {
	evs, err := ez.EventizeItem(it)
	if err != nil {
		return err
	}
	for _, ev := range evs {
		if err := out.Write(ev); err != nil {
			return err
		}
		s.Metrics.Event(source, string(ev.Type))
	}
	return nil
}

func closeInput(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}

// Skippable reports whether err concerns a single input item, so that the
// run may continue past it
func Skippable(err error) bool {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeJSON, perr.ErrorCodeMissingField, perr.ErrorCodeUnsupportedItem, perr.ErrorCodeUnsupportedCategory:
		return true
	default:
		return false
	}
}
