package censor

import (
	"reflect"
	"testing"
)

func TestNewDictionary(t *testing.T) {
	replace := "***"
	search := "duck"
	pairs := []Pair{
		NewPair("ass", "a**"),
		NewPair("asshole", "a*****"),
		{Search: nil, Replace: &replace},
		{Search: &search, Replace: nil},
		NewPair("!!!", "***"),
		NewPair("idiot", "id**t"),
	}
	d := NewDictionary(pairs, []string{"Class", "", "not an idiot", "glass"})

	wantPatterns := []string{"ishui", "idiut", "is"}
	if got := d.Patterns(); !reflect.DeepEqual(got, wantPatterns) {
		t.Errorf("want patterns %v, got %v", wantPatterns, got)
	}

	if d.Whitelisted() != 3 {
		t.Fatalf("want 3 whitelist phrases, got %d", d.Whitelisted())
	}
	wantPhrases := []string{"not an idiot", "class", "glass"}
	for i, e := range d.whitelist {
		if string(e.phrase) != wantPhrases[i] {
			t.Errorf("whitelist[%d]: want %q, got %q", i, wantPhrases[i], string(e.phrase))
		}
	}
}

func TestDictionary_AddCopies(t *testing.T) {
	d := NewDictionary([]Pair{NewPair("duck", "d***")}, []string{"rubber duck"})

	withBlack := d.AddBlacklist(NewPair("idiot", "id**t"))
	withWhite := d.AddWhitelist("duck pond")

	if d.Blacklisted() != 1 || d.Whitelisted() != 1 {
		t.Errorf("original changed: %d blacklist, %d whitelist entries", d.Blacklisted(), d.Whitelisted())
	}
	if withBlack.Blacklisted() != 2 || withBlack.Whitelisted() != 1 {
		t.Errorf("want 2/1 entries after AddBlacklist, got %d/%d", withBlack.Blacklisted(), withBlack.Whitelisted())
	}
	if withWhite.Blacklisted() != 1 || withWhite.Whitelisted() != 2 {
		t.Errorf("want 1/2 entries after AddWhitelist, got %d/%d", withWhite.Blacklisted(), withWhite.Whitelisted())
	}

	wantPatterns := []string{"idiut", "duc"}
	if got := withBlack.Patterns(); !reflect.DeepEqual(got, wantPatterns) {
		t.Errorf("want patterns %v, got %v", wantPatterns, got)
	}
}

func TestDictionary_AddToNil(t *testing.T) {
	var d *Dictionary

	nd := d.AddBlacklist(NewPair("duck", "d***"))
	if nd.Blacklisted() != 1 {
		t.Errorf("want 1 blacklist entry, got %d", nd.Blacklisted())
	}
	if d.Blacklisted() != 0 || d.Whitelisted() != 0 || d.Patterns() != nil {
		t.Error("nil dictionary must report no entries")
	}
}

func TestFitting(t *testing.T) {
	lengths := []int{7, 5, 5, 3, 1}
	tests := []struct {
		n    int
		want int
	}{
		{10, 0}, {7, 0}, {6, 1}, {5, 1}, {4, 3}, {1, 4}, {0, 5},
	}

	for _, tt := range tests {
		if got := fitting(lengths, tt.n, func(l int) int { return l }); got != tt.want {
			t.Errorf("fitting(%d) = %d; want %d", tt.n, got, tt.want)
		}
	}
}
