package config

import (
	"slices"
	"testing"
	"time"

	kit "github.com/chaoss/grimoirelab-chronicler/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	app := root.Prefix("CHRONICLER_")
	if got := app.key("EVENTIZERS"); got != "CHRONICLER_EVENTIZERS" {
		t.Fatalf("key() = %q, want %q", got, "CHRONICLER_EVENTIZERS")
	}
	serve := app.Prefix("SERVE_")
	if got := serve.key("ADDR"); got != "CHRONICLER_SERVE_ADDR" {
		t.Fatalf("nested key() = %q, want %q", got, "CHRONICLER_SERVE_ADDR")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CHR_T_")
	t.Setenv("CHR_T_NAME", "  git ")
	if got := c.MustString("NAME"); got != "git" {
		t.Fatalf("MustString = %q, want %q", got, "git")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	t.Setenv("CHR_T_WS", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("WS") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("S_ADDR", " :8080 ")
	if got := c.MayString("ADDR", "x"); got != ":8080" {
		t.Fatalf("MayString value = %q, want %q", got, ":8080")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	cases := []struct {
		name string
		env  string
		def  int
		want int
	}{
		{"missing", "", 9, 9},
		{"ok", " 7 ", 0, 7},
		{"bad", "x", 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("I_VAL", tc.env)
			if got := c.MayInt("VAL", tc.def); got != tc.want {
				t.Fatalf("MayInt = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if got := c.MayBool("MISSING", true); !got {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("B_T", "true")
	if got := c.MayBool("T", false); !got {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("B_BAD", "nope")
	if got := c.MayBool("BAD", false); got {
		t.Fatalf("MayBool bad -> default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("DUR_OK", "150ms")
	if got := c.MayDuration("OK", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v, want %v", got, 150*time.Millisecond)
	}
	t.Setenv("DUR_BAD", "nope")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default expected")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"chronicler.events"}
	if got := c.MayCSV("MISS", def); !slices.Equal(got, def) {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}

	t.Setenv("CSV_VALS", " one, two , ,three ,, ")
	if got, want := c.MayCSV("VALS", nil), []string{"one", "two", "three"}; !slices.Equal(got, want) {
		t.Fatalf("MayCSV = %#v, want %#v", got, want)
	}

	t.Setenv("CSV_EMPTY", " , ,  ,")
	if got := c.MayCSV("EMPTY", def); !slices.Equal(got, def) {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")

	if got := c.MayEnum("MISS", "json", "json", "console"); got != "json" {
		t.Fatalf("MayEnum default = %q, want %q", got, "json")
	}
	if got := c.MayEnum("MISS", "", "json", "console"); got != "" {
		t.Fatalf("MayEnum empty default = %q", got)
	}

	t.Setenv("E_FMT", "Console")
	if got := c.MayEnum("FMT", "json", "json", "console"); got != "Console" {
		t.Fatalf("MayEnum allowed value = %q, want %q", got, "Console")
	}

	t.Setenv("E_BAD", "xml")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "json", "json", "console") })
}
