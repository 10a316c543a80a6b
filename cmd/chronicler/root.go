package main

import (
	"io"
	"os"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventizer"
	"github.com/chaoss/grimoirelab-chronicler/internal/core/version"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/config"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/logger"
	"github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/domain"
	eventizemod "github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/module"
	"github.com/chaoss/grimoirelab-chronicler/internal/services/eventize/service"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	config       string
	input        string
	output       string
	jsonLine     bool
	skipInvalid  bool
	maxLineBytes int
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:           "chronicler [flags] DATASOURCE",
		Short:         "Generate events from Perceval items",
		Long:          "Reads Perceval items, one JSON object per line, and writes the events of\nthe DATASOURCE eventizer as CloudEvents JSON.",
		Version:       version.Info().String(),
		Args:          oneSource,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(f.config); err != nil {
				return err
			}
			logger.Init(logger.FromEnv())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := mergeFlags(cmd, f, eventizemod.FromConfig(config.New()))
			return runEventize(cmd, args[0], f, opts)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "TOML configuration file")

	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "-", "items file, - for stdin; gzip and zstd are detected")
	fl.StringVarP(&f.output, "output", "o", "-", "events file, - for stdout")
	fl.BoolVar(&f.jsonLine, "json-line", false, "write one compact event per line")
	fl.BoolVar(&f.skipInvalid, "skip-invalid", false, "log and skip invalid items instead of stopping")
	fl.IntVar(&f.maxLineBytes, "max-line-bytes", 0, "longest accepted item line")

	cmd.AddCommand(newSourcesCmd(), newServeCmd())
	return cmd
}

func oneSource(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return perr.InvalidArgf("expected one DATASOURCE argument, got %d", len(args))
	}
	return nil
}

// mergeFlags lets explicit flags win over configuration
func mergeFlags(cmd *cobra.Command, f rootFlags, o eventizemod.Options) eventizemod.Options {
	fl := cmd.Flags()
	if fl.Changed("json-line") {
		o.JSONLine = f.jsonLine
	}
	if fl.Changed("skip-invalid") {
		o.SkipInvalid = f.skipInvalid
	}
	if fl.Changed("max-line-bytes") {
		o.MaxLineBytes = f.maxLineBytes
	}
	return o
}

func runEventize(cmd *cobra.Command, source string, f rootFlags, o eventizemod.Options) error {
	reg := eventizer.Default()
	if !reg.Has(source) {
		return eventizer.UnknownSourceError(source)
	}

	in, err := openInput(cmd, f.input)
	if err != nil {
		return err
	}
	out, closeOut, err := openOutput(cmd, f.output)
	if err != nil {
		_ = in.Close()
		return err
	}

	svc := service.New(reg, nil, service.Config{MaxLineBytes: o.MaxLineBytes})
	_, err = svc.Run(cmd.Context(), domain.Request{
		Source:      source,
		Input:       in,
		Output:      out,
		JSONLine:    o.JSONLine,
		SkipInvalid: o.SkipInvalid,
	})
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "open input %s", path)
	}
	return fh, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, perr.Wrapf(err, perr.ErrorCodeIO, "create output %s", path)
	}
	return fh, func() error {
		if err := fh.Close(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "close output %s", path)
		}
		return nil
	}, nil
}
