package censor

import "unicode"

// similar folds look-alike characters, leetspeak digits and sound-alike letters
// onto a handful of representatives. Keys are lowercase.
var similar = map[rune]rune{
	'0': 'u', 'o': 'u', 'ø': 'u', 'v': 'u', 'w': 'u', 'u': 'u',

	'1': 'i', 'l': 'i', 'ł': 'i', 'e': 'i', '3': 'i', '8': 'i', '€': 'i',
	'y': 'i', '4': 'i', 'æ': 'i', 'a': 'i', 'i': 'i',

	'k': 'c', 'c': 'c', '©': 'c',

	's': 's', 'z': 's', '$': 's', '2': 's', '5': 's', '6': 's', '7': 's', '9': 's',

	'b': 'b', 'ß': 'b', 'þ': 'b',

	'd': 'd', 'ð': 'd', 'đ': 'd', 'ɖ': 'd',
}

// Canonical returns the class representative of r. Characters outside the
// look-alike table come back lowercased.
func Canonical(r rune) rune {
	r = unicode.ToLower(r)
	if c, ok := similar[r]; ok {
		return c
	}
	return r
}

func inTable(r rune) bool {
	_, ok := similar[unicode.ToLower(r)]
	return ok
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
