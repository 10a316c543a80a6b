package config

import (
	"os"
	"strconv"
	"strings"

	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// File is the TOML config file layout. Every field maps onto one env key,
// see Env for the mapping
type File struct {
	Log struct {
		Level       string `toml:"level"`
		Format      string `toml:"format"`
		Caller      *bool  `toml:"caller"`
		SampleEvery int    `toml:"sample_every"`
	} `toml:"log"`

	Eventizers struct {
		Namespaces []string `toml:"namespaces"`
	} `toml:"eventizers"`

	Eventize struct {
		JSONLine     *bool `toml:"json_line"`
		SkipInvalid  *bool `toml:"skip_invalid"`
		MaxLineBytes int   `toml:"max_line_bytes"`
	} `toml:"eventize"`

	Serve struct {
		Addr            string   `toml:"addr"`
		CORSOrigins     []string `toml:"cors_origins"`
		SlowRequest     string   `toml:"slow_request"`
		ShutdownTimeout string   `toml:"shutdown_timeout"`
	} `toml:"serve"`
}

// Env flattens the file into env keys; zero values are omitted
func (f File) Env() map[string]string {
	out := map[string]string{}
	put := func(k, v string) {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	putBool := func(k string, b *bool) {
		if b != nil {
			out[k] = strconv.FormatBool(*b)
		}
	}
	putInt := func(k string, n int) {
		if n > 0 {
			out[k] = strconv.Itoa(n)
		}
	}

	put("LOG_LEVEL", f.Log.Level)
	put("LOG_FORMAT", f.Log.Format)
	putBool("LOG_CALLER", f.Log.Caller)
	putInt("LOG_SAMPLE_EVERY", f.Log.SampleEvery)

	put("CHRONICLER_EVENTIZERS", strings.Join(f.Eventizers.Namespaces, ","))

	putBool("CHRONICLER_JSON_LINE", f.Eventize.JSONLine)
	putBool("CHRONICLER_SKIP_INVALID", f.Eventize.SkipInvalid)
	putInt("CHRONICLER_MAX_LINE_BYTES", f.Eventize.MaxLineBytes)

	put("CHRONICLER_SERVE_ADDR", f.Serve.Addr)
	put("CHRONICLER_SERVE_CORS_ORIGINS", strings.Join(f.Serve.CORSOrigins, ","))
	put("CHRONICLER_SERVE_SLOW", f.Serve.SlowRequest)
	put("CHRONICLER_SERVE_SHUTDOWN_TIMEOUT", f.Serve.ShutdownTimeout)
	return out
}

// ReadFile decodes a TOML config file, rejecting keys it does not know
func ReadFile(path string) (File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "config file %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return File{}, perr.Newf(perr.ErrorCodeInvalidArgument, "config file %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return f, nil
}

// Load layers optional config sources under the process env.
// dotenv files that do not exist are ignored; an explicit configPath must exist
func Load(configPath string, dotenv ...string) error {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, p := range dotenv {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		// godotenv.Load never overrides keys already present in the env
		if err := godotenv.Load(p); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "dotenv %s", p)
		}
	}

	if strings.TrimSpace(configPath) == "" {
		return nil
	}
	f, err := ReadFile(configPath)
	if err != nil {
		return err
	}
	for k, v := range f.Env() {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "setenv %s", k)
		}
	}
	return nil
}
