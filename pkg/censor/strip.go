package censor

import (
	"unicode"
	"unicode/utf8"

	"github.com/mtibben/confusables"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// marks are the rune classes removed after canonical decomposition: combining
// marks, modifier letters and modifier symbols.
var marks = runes.Predicate(isMark)

func isMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Lm, unicode.Sk)
}

func stripper() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(marks), norm.NFC)
}

// StripDiacritics decomposes s, drops diacritical and modifier marks and
// recomposes what is left. Input the transformer rejects is returned as is.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripper(), s)
	if err != nil {
		return s
	}
	return out
}

// lookalikes maps letters whose confusable skeleton is not a Latin letter,
// mostly Cyrillic, and skeleton results outside the look-alike table.
var lookalikes = map[rune]rune{
	'и': 'u', 'ц': 'u', 'ш': 'w', 'щ': 'w',
	'к': 'k', 'ĸ': 'k', 'ᴋ': 'k',
	'д': 'd', 'п': 'n', 'ᴎ': 'u', 'т': 't', 'ᴛ': 't',
	'г': 'r', 'в': 'b', 'ь': 'b', 'ʙ': 'b',
}

// fold returns the character r stands for once compatibility forms such as
// fullwidth letters are decomposed, diacritics are stripped and a non-ASCII
// look-alike is replaced by a Latin letter. Characters that expand into several
// letters are left alone. ok is false when nothing is left of r.
func fold(r rune) (rune, bool) {
	if r < utf8.RuneSelf {
		return r, !isMark(r)
	}
	if isMark(r) {
		return 0, false
	}

	s := decompose(r)
	if s < utf8.RuneSelf || inTable(s) {
		return s, true
	}
	if l, ok := lookalikes[unicode.ToLower(s)]; ok {
		return l, true
	}

	if k := []rune(confusables.Skeleton(string(s))); len(k) == 1 {
		f := decompose(k[0])
		if l, ok := lookalikes[unicode.ToLower(f)]; ok {
			return l, true
		}
		return f, true
	}
	return s, true
}

// decompose returns the single base letter left of r after compatibility
// decomposition and mark removal. Runes already in that form and runes that
// decompose into several letters come back unchanged.
func decompose(r rune) rune {
	s := string(r)
	if norm.NFKD.IsNormalString(s) {
		return r
	}

	base := r
	n := 0
	for _, d := range norm.NFKD.String(s) {
		if isMark(d) {
			continue
		}
		base = d
		n++
	}
	if n != 1 {
		return r
	}
	return base
}
