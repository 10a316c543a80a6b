package identity

import (
	"testing"
)

// render flattens an identity for table comparison; "-" marks an absent side
func render(ids []Identity) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		n, e := "-", "-"
		if id.Name != nil {
			n = *id.Name
		}
		if id.Email != nil {
			e = *id.Email
		}
		out = append(out, n+"|"+e)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"single person", "Eduardo Morais <companheiro.vermelho@example.com>",
			[]string{"Eduardo Morais|companheiro.vermelho@example.com"}},
		{"non latin script", "Zhongpeng Lin (林中鹏) <lin.zhp@example.com>",
			[]string{"Zhongpeng Lin (林中鹏)|lin.zhp@example.com"}},
		{"shared email", "A, B & C <x@example.com>",
			[]string{"A|-", "B|-", "C|-", "-|x@example.com"}},
		{"and conjunction", "Alice and Bob <team@example.com>",
			[]string{"Alice|-", "Bob|-", "-|team@example.com"}},
		{"no email", "Alice and Bob",
			[]string{"Alice|-", "Bob|-"}},
		{"email only", "<solo@example.com>",
			[]string{"-|solo@example.com"}},
		{"empty brackets", "Alice <>",
			[]string{"Alice|-"}},
		{"and inside words is kept", "Sandy Anderson <s@example.com>",
			[]string{"Sandy Anderson|s@example.com"}},
		{"And is case sensitive", "Tom And Jerry <tj@example.com>",
			[]string{"Tom And Jerry|tj@example.com"}},
		{"empty fragments dropped", " , Alice ,, & <a@example.com>",
			[]string{"Alice|a@example.com"}},
		{"last bracket wins", "Bob <old@example.com> <new@example.com>",
			[]string{"Bob <old@example.com>|new@example.com"}},
		{"internal whitespace kept", "  Jean  Luc   <jl@example.com>  ",
			[]string{"Jean  Luc|jl@example.com"}},
		{"empty", "   ", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := render(Parse(tc.in)); !equal(got, tc.want) {
				t.Fatalf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseTrailer(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Jane Doe <jane@example.com>", "Jane Doe|jane@example.com", true},
		{"Alice and Bob <ab@example.com>", "Alice and Bob|ab@example.com", true},
		{"Smith, John", "Smith, John|-", true},
		{"<bot@example.com>", "-|bot@example.com", true},
		{"  ", "", false},
		{"<>", "", false},
	}
	for _, tc := range cases {
		id, ok := ParseTrailer(tc.in)
		if ok != tc.wantOK {
			t.Fatalf("ParseTrailer(%q) ok = %v, want %v", tc.in, ok, tc.wantOK)
		}
		if ok && render([]Identity{id})[0] != tc.want {
			t.Fatalf("ParseTrailer(%q) = %q, want %q", tc.in, render([]Identity{id})[0], tc.want)
		}
	}
}

func TestUUID(t *testing.T) {
	name, email := "José Pérez", "Jose.Perez@Example.com"
	plain, lower := "jose perez", "jose.perez@example.com"

	a := UUID("git", Identity{Name: &name, Email: &email})
	b := UUID("git", Identity{Name: &plain, Email: &lower})
	if a != b {
		t.Fatalf("case and accents should fold to the same uuid: %s vs %s", a, b)
	}
	if len(a) != 40 {
		t.Fatalf("uuid width = %d", len(a))
	}

	cases := []struct {
		name string
		x, y Identity
	}{
		{"name only vs email only", Identity{Name: &name}, Identity{Email: &name}},
		{"name only vs both", Identity{Name: &name}, Identity{Name: &name, Email: &email}},
	}
	for _, tc := range cases {
		if UUID("git", tc.x) == UUID("git", tc.y) {
			t.Fatalf("%s: uuids collided", tc.name)
		}
	}
	if UUID("git", Identity{Email: &email}) == UUID("github", Identity{Email: &email}) {
		t.Fatalf("source must be part of the uuid")
	}

	cjk := "林中鹏"
	if foldName(cjk) != cjk {
		t.Fatalf("non latin names must survive folding, got %q", foldName(cjk))
	}
}
