// Package source reads the JSON array of articles fed to the loader, from a
// local file or an HTTP URL.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bilgisen/newsseed/internal/models"
)

// Reader loads raw article elements from a location
type Reader struct {
	fetcher *Fetcher
}

func NewReader(fetcher *Fetcher) *Reader {
	return &Reader{fetcher: fetcher}
}

// Read returns the elements of the JSON array found at location, which is
// either a file path or an http(s) URL.
func (r *Reader) Read(ctx context.Context, location string) ([]any, error) {
	var (
		data []byte
		err  error
	)
	if isURL(location) {
		data, err = r.fetcher.Fetch(ctx, location)
	} else {
		data, err = os.ReadFile(location)
		if err != nil {
			err = fmt.Errorf("failed to read %s: %w", location, err)
		}
	}
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses a JSON array, keeping integers and floats apart
func Decode(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse articles: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse articles: unexpected data after array")
	}

	for i, item := range items {
		items[i] = models.Normalize(item)
	}
	return items, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
