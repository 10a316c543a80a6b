// Package eventid derives stable event identifiers from the fields that define an event.
//
// Each field is framed before hashing: a present value is written as "s<len>:<value>",
// an absent one as "n". Framing keeps ("ab","c") and ("a","bc") apart, and keeps an
// absent field apart from an empty one. The digest is SHA-1, rendered as 40 lowercase
// hex chars, the same width as the commit hashes the ids sit next to.
package eventid

import (
	"crypto/sha1" //nolint:gosec // identifier derivation, not a security boundary
	"encoding/hex"
	"hash"
	"strconv"
)

// Builder accumulates framed fields. The zero value is not usable; call New
type Builder struct {
	h   hash.Hash
	buf []byte
}

// New starts an identifier
func New() *Builder {
	return &Builder{h: sha1.New(), buf: make([]byte, 0, 64)} //nolint:gosec
}

// Str appends a present field
func (b *Builder) Str(v string) *Builder {
	b.buf = append(b.buf[:0], 's')
	b.buf = strconv.AppendInt(b.buf, int64(len(v)), 10)
	b.buf = append(b.buf, ':')
	b.h.Write(b.buf)
	b.h.Write([]byte(v))
	return b
}

// Opt appends an optional field; nil is framed as absent
func (b *Builder) Opt(v *string) *Builder {
	if v == nil {
		b.h.Write([]byte{'n'})
		return b
	}
	return b.Str(*v)
}

// Hex finishes the identifier
func (b *Builder) Hex() string { return hex.EncodeToString(b.h.Sum(nil)) }

// Of hashes present fields in order
func Of(fields ...string) string {
	b := New()
	for _, f := range fields {
		b.Str(f)
	}
	return b.Hex()
}
