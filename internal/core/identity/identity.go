// Package identity extracts people from the free-text fields of a commit.
//
// A field reads "<names> <email>", where the email is the last angle-bracketed
// token. Author and committer name parts may list several people separated by
// ",", "&" or the word "and"; trailer values always name one person.
package identity

import (
	"regexp"
	"strings"
)

// Identity is one parsed person; either side may be absent but never both
type Identity struct {
	Name  *string
	Email *string
}

var (
	listSep = regexp.MustCompile(`[,&]`)
	andSep  = regexp.MustCompile(`(?:^|\s)and(?:\s|$)`)
)

// Parse reads an author or committer field.
//
// One name with an email yields one identity carrying both. Several names with one
// email yield a name-only identity per name plus one email-only identity: the
// email is never attributed to a single co-author
func Parse(s string) []Identity {
	namePart, email := splitEmail(s)
	names := splitNames(namePart)

	switch {
	case email == nil:
		out := make([]Identity, 0, len(names))
		for _, n := range names {
			out = append(out, Identity{Name: ptr(n)})
		}
		return out
	case len(names) == 0:
		return []Identity{{Email: email}}
	case len(names) == 1:
		return []Identity{{Name: ptr(names[0]), Email: email}}
	default:
		out := make([]Identity, 0, len(names)+1)
		for _, n := range names {
			out = append(out, Identity{Name: ptr(n)})
		}
		return append(out, Identity{Email: email})
	}
}

// ParseTrailer reads a trailer value such as a Signed-off-by line. The name part is
// kept whole. ok is false when the value names nobody
func ParseTrailer(s string) (id Identity, ok bool) {
	namePart, email := splitEmail(s)
	if namePart != "" {
		id.Name = ptr(namePart)
	}
	id.Email = email
	return id, id.Name != nil || id.Email != nil
}

// splitEmail cuts the last <...> token out of s. An empty token counts as no email
func splitEmail(s string) (namePart string, email *string) {
	s = strings.TrimSpace(s)
	gt := strings.LastIndexByte(s, '>')
	if gt < 0 {
		return s, nil
	}
	lt := strings.LastIndexByte(s[:gt], '<')
	if lt < 0 {
		return s, nil
	}
	namePart = strings.TrimSpace(s[:lt])
	if e := strings.TrimSpace(s[lt+1 : gt]); e != "" {
		email = ptr(e)
	}
	return namePart, email
}

func splitNames(namePart string) []string {
	if namePart == "" {
		return nil
	}
	var out []string
	for _, frag := range listSep.Split(namePart, -1) {
		for _, n := range andSep.Split(strings.TrimSpace(frag), -1) {
			if n = strings.TrimSpace(n); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

func ptr(s string) *string { return &s }
