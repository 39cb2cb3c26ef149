// Package markup expands alternate colour-code prefixes in replacement text.
package markup

import (
	"strings"
	"unicode"
)

// ColorChar introduces a colour or style code in chat text.
const ColorChar = '§'

const codes = "0123456789abcdefklmnor"

// TranslateColorCodes replaces alt followed by a known colour or style code
// with ColorChar and the lowercased code. Other occurrences of alt are kept.
func TranslateColorCodes(alt rune, s string) string {
	if !strings.ContainsRune(s, alt) {
		return s
	}

	rs := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		if rs[i] == alt && i+1 < len(rs) {
			code := unicode.ToLower(rs[i+1])
			if strings.ContainsRune(codes, code) {
				sb.WriteRune(ColorChar)
				sb.WriteRune(code)
				i++
				continue
			}
		}
		sb.WriteRune(rs[i])
	}
	return sb.String()
}

// StripColorCodes removes ColorChar sequences, leaving plain text.
func StripColorCodes(s string) string {
	if !strings.ContainsRune(s, ColorChar) {
		return s
	}

	rs := []rune(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		if rs[i] == ColorChar && i+1 < len(rs) && strings.ContainsRune(codes, unicode.ToLower(rs[i+1])) {
			i++
			continue
		}
		sb.WriteRune(rs[i])
	}
	return sb.String()
}
