package identity

import (
	"strings"
	"sync"
	"unicode"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/eventid"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// unaccent chains are stateful; pool them like any transformer
var unaccentPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	},
}

// UUID is the cross-commit key of an identity within a source.
// It ignores role and commit, so one person keeps one uuid everywhere.
// Both sides are folded before hashing: emails to lower case, names to
// lower case without accents
func UUID(source string, id Identity) string {
	b := eventid.New().Str(source)
	if id.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*id.Email))
		b.Opt(&e)
	} else {
		b.Opt(nil)
	}
	if id.Name != nil {
		n := foldName(*id.Name)
		b.Opt(&n)
	} else {
		b.Opt(nil)
	}
	return b.Hex()
}

func foldName(s string) string {
	s = strings.ToValidUTF8(strings.TrimSpace(s), "")
	tr := unaccentPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	unaccentPool.Put(tr)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
