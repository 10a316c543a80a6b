package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/version"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
	kit "github.com/chaoss/grimoirelab-chronicler/internal/platform/testkit"
)

func commitLine(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "internal", "core", "eventizer", "git", "testdata", "commit.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		t.Fatalf("compact: %v", err)
	}
	return buf.String() + "\n"
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CHRONICLER_JSON_LINE", "")
	t.Setenv("CHRONICLER_SKIP_INVALID", "")
	t.Setenv("CHRONICLER_MAX_LINE_BYTES", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestEventizeStdinJSONLine(t *testing.T) {
	out, err := execute(t, commitLine(t), "--json-line", "git")
	if err != nil {
		t.Fatalf("Execute: %v\n%s", err, out)
	}
	lines := kit.Lines(out)
	if len(lines) != 4 {
		t.Fatalf("want 4 events, got %d:\n%s", len(lines), out)
	}
	kit.MustContain(t, lines[0], `"type":"org.grimoirelab.events.git.commit"`)
}

func TestEventizePrettyIsDefault(t *testing.T) {
	out, err := execute(t, commitLine(t), "git")
	if err != nil {
		t.Fatalf("Execute: %v\n%s", err, out)
	}
	kit.MustContain(t, out, "\n    \"specversion\": \"1.0\"")
}

func TestEventizeFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "items.jsonl")
	outPath := filepath.Join(dir, "events.jsonl")
	if err := os.WriteFile(in, []byte(commitLine(t)), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if _, err := execute(t, "", "-i", in, "-o", outPath, "--json-line", "git"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if n := len(kit.Lines(string(b))); n != 4 {
		t.Fatalf("events in file = %d", n)
	}
}

func TestEventizeErrorsMapToExitCodes(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		code  perr.ErrorCode
		exit  int
	}{
		{"unknown source", "", []string{"jira"}, perr.ErrorCodeUnknownSource, 2},
		{"no source", "", nil, perr.ErrorCodeInvalidArgument, 2},
		{"bad line", "{nope\n", []string{"git"}, perr.ErrorCodeJSON, 3},
		{"missing input", "", []string{"-i", filepath.Join(t.TempDir(), "none"), "git"}, perr.ErrorCodeIO, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.stdin, tc.args...)
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("code = %v, want %v (%v)", perr.CodeOf(err), tc.code, err)
			}
			if got := perr.Exit(err); got != tc.exit {
				t.Fatalf("exit = %d, want %d", got, tc.exit)
			}
		})
	}
}

func TestSkipInvalidFlag(t *testing.T) {
	out, err := execute(t, "{nope\n"+commitLine(t), "--json-line", "--skip-invalid", "git")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if n := len(kit.Lines(out)); n != 4 {
		t.Fatalf("events = %d", n)
	}
}

func TestSourcesCommand(t *testing.T) {
	out, err := execute(t, "", "sources")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	kit.MustContain(t, out, "git\n")
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "", "--version")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out) != version.Info().String() {
		t.Fatalf("version = %q", out)
	}
}
