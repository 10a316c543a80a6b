package module

import (
	"github.com/chaoss/grimoirelab-chronicler/internal/adapters/perceval"
	"github.com/chaoss/grimoirelab-chronicler/internal/platform/config"
)

// Options holds configuration settings for the eventize module
type Options struct {
	JSONLine     bool
	SkipInvalid  bool
	MaxLineBytes int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CHRONICLER_")
	return Options{
		JSONLine:     ef.MayBool("JSON_LINE", false),
		SkipInvalid:  ef.MayBool("SKIP_INVALID", false),
		MaxLineBytes: ef.MayInt("MAX_LINE_BYTES", perceval.DefaultMaxLineBytes),
	}
}
