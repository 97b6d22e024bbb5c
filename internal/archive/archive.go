// Package archive keeps JSON snapshots of documents before the editor
// changes them, on local disk and optionally in S3-compatible storage.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Uploader copies a snapshot to remote object storage
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte) error
}

type Archive struct {
	basePath string
	uploader Uploader
	now      func() time.Time
}

// New creates the base directory if needed. uploader may be nil.
func New(basePath string, uploader Uploader) (*Archive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &Archive{
		basePath: basePath,
		uploader: uploader,
		now:      time.Now,
	}, nil
}

// Snapshot writes doc to YYYY/MM/DD/<unix>_<id>.json under the base path and
// returns the file path.
func (a *Archive) Snapshot(ctx context.Context, id string, doc map[string]any) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	now := a.now()
	key := filepath.ToSlash(filepath.Join(
		now.Format("2006/01/02"),
		fmt.Sprintf("%d_%s.json", now.Unix(), safeName(id)),
	))
	filePath := filepath.Join(a.basePath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create date directory: %w", err)
	}

	data, err := json.MarshalIndent(map[string]any{
		"id":          id,
		"archived_at": now.UTC(),
		"document":    doc,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}

	if a.uploader != nil {
		if err := a.uploader.Upload(ctx, key, data); err != nil {
			return filePath, fmt.Errorf("failed to upload snapshot: %w", err)
		}
	}

	return filePath, nil
}

// safeName keeps ids usable as a single file name
func safeName(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, id)
}
