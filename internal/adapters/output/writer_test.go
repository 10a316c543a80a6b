package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/event"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
	kit "github.com/chaoss/grimoirelab-chronicler/internal/platform/testkit"
)

func sample() event.Event {
	name := "Zhongpeng Lin (林中鹏)"
	return event.Event{
		ID:          "e1",
		Type:        event.TypeCommitAuthoredBy,
		Source:      "https://example.git",
		Time:        json.Number("1392185439.0"),
		LinkedEvent: "c1",
		Data:        event.IdentityData{Name: &name, Role: event.RoleAuthoredBy, Source: "git", UUID: "u1"},
	}
}

func TestJSONLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatFor(true))
	for range 2 {
		if err := w.Write(sample()); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	lines := kit.Lines(buf.String())
	if len(lines) != 2 || w.Count() != 2 {
		t.Fatalf("lines = %d, count = %d", len(lines), w.Count())
	}
	want := `{"data":{"email":null,"name":"Zhongpeng Lin (林中鹏)","role":"authored_by","source":"git","username":null,"uuid":"u1"},` +
		`"datacontenttype":"application/json","id":"e1","linked_event":"c1","source":"https://example.git",` +
		`"specversion":"1.0","time":1392185439.0,"type":"org.grimoirelab.events.git.commit.authored_by"}`
	if lines[0] != want {
		t.Fatalf("line =\n%s\nwant\n%s", lines[0], want)
	}
}

func TestPretty(t *testing.T) {
	b, err := Encode(sample(), FormatPretty)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := string(b)
	if !strings.HasPrefix(out, "{\n    \"data\": {\n        \"email\": null,") {
		t.Fatalf("pretty output not sorted/indented:\n%s", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Fatalf("pretty output should end with a newline")
	}
	kit.MustContain(t, out, `"time": 1392185439.0`)
}

func TestNoHTMLEscaping(t *testing.T) {
	ev := sample()
	ev.Source = "https://example.git?a=1&b=<2>"
	b, _ := Encode(ev, FormatJSONLine)
	kit.MustContain(t, string(b), `a=1&b=<2>`)
}

func TestContentTypes(t *testing.T) {
	if FormatJSONLine.ContentType() != "application/x-ndjson" || FormatPretty.ContentType() != "application/json" {
		t.Fatalf("content types mismatch")
	}
}

// canonical renders v by decoding into maps, which encode with sorted keys
func canonical(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tree); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.String()
}

func TestKeysSortedForEveryPayload(t *testing.T) {
	newName := "b.txt"
	signed := []string{"Jane <jane@example.com>"}
	cases := map[string]event.Event{
		"identity": sample(),
		"action": {ID: "a1", Type: event.TypeActionCopied, Source: "s", Time: "1", LinkedEvent: "c1",
			Data: event.ActionData{Filename: "a.txt", NewFilename: &newName, AddedLines: "1", DeletedLines: "-"}},
		"commit": {ID: "c1", Type: event.TypeMergeCommit, Source: "s", Time: "1.5",
			Data: event.CommitData{
				Hash: "abc", Author: "A <a@x>", AuthorDate: "d", Committer: "C <c@x>", CommitDate: "d",
				Message: "m & <b>", Parents: []string{"p1", "p2"}, Refs: []string{}, Merge: "p1 p2",
				SignedOffBy: signed, CoAuthoredBy: signed,
				Files: []event.FileChange{{Action: "C075", File: "a.txt", NewFile: &newName, Added: "1", Removed: "0",
					Indexes: []string{"1", "2"}, Modes: []string{"100644"}}},
			}},
	}
	for name, ev := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := Encode(ev, FormatJSONLine)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got, want := string(b), canonical(t, ev); got != want {
				t.Fatalf("keys not sorted:\n%s\nwant\n%s", got, want)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFlushError(t *testing.T) {
	w := NewWriter(failingWriter{}, FormatJSONLine)
	_ = w.Write(sample())
	err := w.Flush()
	if !perr.IsCode(err, perr.ErrorCodeIO) {
		t.Fatalf("want IO error, got %v", err)
	}
}
