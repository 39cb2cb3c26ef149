package censor

import (
	"strings"
	"unicode/utf8"
)

// Slot is one position of the canonical form. Offset and End delimit, in the
// reference text, the last original character that collapsed into the slot.
type Slot struct {
	Char   rune
	Offset int
	End    int
}

// Buffer is the canonical form of a text together with its index map back
// into that text. Offsets never decrease along the buffer.
type Buffer []Slot

// String renders the canonical characters.
func (b Buffer) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, s := range b {
		sb.WriteRune(s.Char)
	}
	return sb.String()
}

// Runes returns the canonical characters.
func (b Buffer) Runes() []rune {
	out := make([]rune, len(b))
	for i, s := range b {
		out[i] = s.Char
	}
	return out
}

// hasPattern reports whether the canonical characters starting at pos equal p.
func (b Buffer) hasPattern(pos int, p []rune) bool {
	if pos+len(p) > len(b) {
		return false
	}
	for i, r := range p {
		if b[pos+i].Char != r {
			return false
		}
	}
	return true
}

// Normalize canonicalizes text. Characters whose class is neither a letter nor
// a digit are dropped unless keepNonAlnum is set. Consecutive characters of the
// same class share one slot, which then points at the last of them.
func Normalize(text string, keepNonAlnum bool) Buffer {
	buf := make(Buffer, 0, len(text))
	prev := rune(-1)

	for off := 0; off < len(text); {
		r, size := utf8.DecodeRuneInString(text[off:])
		start, end := off, off+size
		off = end

		f, ok := fold(r)
		if !ok {
			continue
		}
		c := Canonical(f)
		switch {
		case !keepNonAlnum && !isAlnum(c):
		case c == prev:
			last := &buf[len(buf)-1]
			last.Offset, last.End = start, end
		default:
			prev = c
			buf = append(buf, Slot{Char: c, Offset: start, End: end})
		}
	}

	return buf
}
