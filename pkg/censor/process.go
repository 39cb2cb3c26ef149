package censor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// whitelistSpaces are the characters of the checked text that a space in a
// whitelist phrase stands for.
const whitelistSpaces = ".,:;?! \t\n\r\f"

// Process redacts every blacklisted word found in text. The second result is
// false, and the string empty, when nothing had to be replaced.
func (d *Dictionary) Process(text string) (string, bool) {
	out, changed, _ := d.process(text, false)
	return out, changed
}

// ProcessCanonical works like Process and also returns the canonical form the
// blacklist was matched against.
func (d *Dictionary) ProcessCanonical(text string) (string, bool, string) {
	return d.process(text, true)
}

func (d *Dictionary) process(text string, withCanonical bool) (string, bool, string) {
	// Padding gives matches at the very edges of text the same whitelist
	// context as matches in the middle.
	padded := " " + text + " "
	buf := Normalize(padded, false)

	var canonical string
	if withCanonical {
		canonical = buf.String()
	}
	if d == nil || len(d.blacklist) == 0 {
		return "", false, canonical
	}

	var (
		sb      strings.Builder
		copied  int
		changed bool
		span    = window{text: padded, runes: -1}
	)

	for pos := 0; pos < len(buf); {
		matched := false
		first := fitting(d.blacklist, len(buf)-pos, func(e blackEntry) int { return len(e.pattern) })
		for _, e := range d.blacklist[first:] {
			if !buf.hasPattern(pos, e.pattern) {
				continue
			}

			start := buf[pos].Offset
			end := buf[pos+len(e.pattern)-1].End
			if d.whitelisted(&span, start, end) {
				continue
			}

			if !changed {
				sb.Grow(len(padded))
			}
			sb.WriteString(padded[copied:start])
			sb.WriteString(e.replacement)
			copied = end
			pos += len(e.pattern)
			matched, changed = true, true
			break
		}
		if !matched {
			pos++
		}
	}

	if !changed {
		return "", false, canonical
	}

	sb.WriteString(padded[copied:])
	out := sb.String()

	return out[1 : len(out)-1], true, canonical
}

// window resolves whitelist search bounds inside the reference text.
type window struct {
	text  string
	runes int
}

func (w *window) length() int {
	if w.runes < 0 {
		w.runes = utf8.RuneCountInString(w.text)
	}
	return w.runes
}

// bounds widens the byte span [start, end) by n characters on both sides.
func (w *window) bounds(start, end, n int) (int, int) {
	for i := 0; i < n && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(w.text[:start])
		start -= size
	}
	for i := 0; i < n && end < len(w.text); i++ {
		_, size := utf8.DecodeRuneInString(w.text[end:])
		end += size
	}
	return start, end
}

// whitelisted reports whether some whitelist phrase occurs in the reference
// text overlapping the matched span [start, end).
func (d *Dictionary) whitelisted(w *window, start, end int) bool {
	if len(d.whitelist) == 0 {
		return false
	}

	first := fitting(d.whitelist, w.length(), func(e whiteEntry) int { return len(e.phrase) })
	for _, e := range d.whitelist[first:] {
		from, to := w.bounds(start, end, len(e.phrase)-1)
		if indexWhitelist(w.text[from:to], e.phrase) >= 0 {
			return true
		}
	}
	return false
}

// indexWhitelist returns the byte index of the first occurrence of phrase in s
// under whitelist comparison, or -1.
func indexWhitelist(s string, phrase []rune) int {
	for i := 0; i < len(s); {
		if hasWhitelistPrefix(s[i:], phrase) {
			return i
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1
}

// hasWhitelistPrefix compares case-insensitively; a space separator in phrase
// matches any of whitelistSpaces.
func hasWhitelistPrefix(s string, phrase []rune) bool {
	for _, p := range phrase {
		if s == "" {
			return false
		}
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		if unicode.In(p, unicode.Zs, unicode.Zl, unicode.Zp) {
			if !strings.ContainsRune(whitelistSpaces, r) {
				return false
			}
			continue
		}
		if unicode.ToLower(r) != unicode.ToLower(p) {
			return false
		}
	}
	return true
}
