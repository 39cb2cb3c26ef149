package censor

import (
	"cmp"
	"slices"
	"strings"
)

// Pair is a raw blacklist entry. A nil field makes the entry unusable and it
// is dropped when the dictionary is built.
type Pair struct {
	Search  *string
	Replace *string
}

// NewPair returns a Pair with both fields set.
func NewPair(search, replace string) Pair {
	return Pair{Search: &search, Replace: &replace}
}

type blackEntry struct {
	pattern     []rune
	replacement string
}

type whiteEntry struct {
	phrase []rune
}

// Dictionary holds the blacklist and the whitelist, each ordered from the
// longest entry to the shortest. A Dictionary is never modified once built;
// the Add methods return a new one. A nil *Dictionary is empty.
type Dictionary struct {
	blacklist []blackEntry
	whitelist []whiteEntry
}

// NewDictionary builds a dictionary from raw blacklist pairs and whitelist
// phrases.
func NewDictionary(pairs []Pair, phrases []string) *Dictionary {
	var d Dictionary
	d.blacklist = appendBlacklist(nil, pairs)
	d.whitelist = appendWhitelist(nil, phrases)
	sortByLength(d.blacklist, func(e blackEntry) int { return len(e.pattern) })
	sortByLength(d.whitelist, func(e whiteEntry) int { return len(e.phrase) })

	return &d
}

// AddBlacklist returns a copy of d with pairs merged into the blacklist.
func (d *Dictionary) AddBlacklist(pairs ...Pair) *Dictionary {
	nd := d.clone()
	nd.blacklist = appendBlacklist(nd.blacklist, pairs)
	sortByLength(nd.blacklist, func(e blackEntry) int { return len(e.pattern) })

	return nd
}

// AddWhitelist returns a copy of d with phrases merged into the whitelist.
func (d *Dictionary) AddWhitelist(phrases ...string) *Dictionary {
	nd := d.clone()
	nd.whitelist = appendWhitelist(nd.whitelist, phrases)
	sortByLength(nd.whitelist, func(e whiteEntry) int { return len(e.phrase) })

	return nd
}

// Blacklisted returns the number of usable blacklist entries.
func (d *Dictionary) Blacklisted() int {
	if d == nil {
		return 0
	}
	return len(d.blacklist)
}

// Whitelisted returns the number of whitelist phrases.
func (d *Dictionary) Whitelisted() int {
	if d == nil {
		return 0
	}
	return len(d.whitelist)
}

// Patterns returns the canonical blacklist patterns, longest first.
func (d *Dictionary) Patterns() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.blacklist))
	for i, e := range d.blacklist {
		out[i] = string(e.pattern)
	}
	return out
}

func (d *Dictionary) clone() *Dictionary {
	if d == nil {
		return &Dictionary{}
	}
	return &Dictionary{
		blacklist: slices.Clone(d.blacklist),
		whitelist: slices.Clone(d.whitelist),
	}
}

func appendBlacklist(dst []blackEntry, pairs []Pair) []blackEntry {
	for _, p := range pairs {
		if p.Search == nil || p.Replace == nil {
			continue
		}
		pattern := Normalize(*p.Search, false).Runes()
		if len(pattern) == 0 {
			continue
		}
		dst = append(dst, blackEntry{pattern: pattern, replacement: *p.Replace})
	}
	return dst
}

func appendWhitelist(dst []whiteEntry, phrases []string) []whiteEntry {
	for _, p := range phrases {
		if p == "" {
			continue
		}
		dst = append(dst, whiteEntry{phrase: []rune(strings.ToLower(p))})
	}
	return dst
}

// sortByLength orders s longest first. Equal lengths keep their relative order.
func sortByLength[E any](s []E, length func(E) int) {
	slices.SortStableFunc(s, func(a, b E) int {
		return cmp.Compare(length(b), length(a))
	})
}

// fitting returns the index of the first entry whose length is at most n.
func fitting[E any](s []E, n int, length func(E) int) int {
	i, _ := slices.BinarySearchFunc(s, n, func(e E, n int) int {
		return cmp.Compare(n, length(e))
	})
	return i
}
