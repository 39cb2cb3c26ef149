package censor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"antiswear/pkg/markup"
)

// File is the on-disk dictionary layout. Blacklist items are maps from search
// text to replacement; a null replacement drops the entry.
type File struct {
	ColorCodes bool                 `json:"colorCodes"`
	Blacklist  []map[string]*string `json:"blacklist"`
	Whitelist  []*string            `json:"whitelist"`
}

// Entries returns the raw blacklist pairs and whitelist phrases of f.
func (f *File) Entries() ([]Pair, []string) {
	var pairs []Pair
	for _, m := range f.Blacklist {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, k := range keys {
			search, replace := k, m[k]
			if replace != nil && f.ColorCodes {
				translated := markup.TranslateColorCodes('&', *replace)
				replace = &translated
			}
			pairs = append(pairs, Pair{Search: &search, Replace: replace})
		}
	}

	phrases := make([]string, 0, len(f.Whitelist))
	for _, p := range f.Whitelist {
		if p != nil {
			phrases = append(phrases, *p)
		}
	}

	return pairs, phrases
}

// Dictionary builds the dictionary described by f.
func (f *File) Dictionary() *Dictionary {
	return NewDictionary(f.Entries())
}

// DecodeJSON reads a dictionary file from r.
func DecodeJSON(r io.Reader) (*Dictionary, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	return f.Dictionary(), nil
}

// LoadFromJSON loads the dictionary from a JSON file and installs it.
func (c *Censor) LoadFromJSON(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	d, err := DecodeJSON(f)
	if err != nil {
		return err
	}

	c.Swap(d)
	return nil
}
