// Package source loads censor dictionaries from files, HTTP endpoints and
// databases.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"antiswear/pkg/censor"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Source builds a complete dictionary. A failed load never yields a partial
// dictionary.
type Source interface {
	Load(ctx context.Context) (*censor.Dictionary, error)
}

// File reads a JSON dictionary from disk.
type File struct {
	Path string
}

func (f File) Load(_ context.Context) (*censor.Dictionary, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return censor.DecodeJSON(file)
}

func (f File) String() string {
	return "file " + f.Path
}

// HTTP fetches a JSON dictionary with a GET request.
type HTTP struct {
	URL    string
	Client *http.Client
}

func (h HTTP) Load(ctx context.Context) (*censor.Dictionary, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s from %s", ErrUnexpectedStatus, resp.Status, h.URL)
	}
	log.Debugf("[source] dictionary fetched from %s", h.URL)

	return censor.DecodeJSON(resp.Body)
}

func (h HTTP) String() string {
	return "url " + h.URL
}

// Reload loads a dictionary from src and installs it into c. The current
// dictionary is kept when loading fails.
func Reload(ctx context.Context, c *censor.Censor, src Source) error {
	d, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	c.Swap(d)
	log.Infof("[source] dictionary loaded: %d blacklist, %d whitelist entries", d.Blacklisted(), d.Whitelisted())

	return nil
}
