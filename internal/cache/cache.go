// Package cache remembers which article ids are already known to be stored,
// letting repeated loader runs skip the remote existence check.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SeenCache records article ids that exist in the document store
type SeenCache interface {
	IsProcessed(ctx context.Context, id string) (bool, error)
	MarkProcessed(ctx context.Context, id string, ttl time.Duration) error
	Close() error
}

// Hash generates a SHA-256 hash of the input string
func Hash(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// ScopedPrefix namespaces seen-id keys by backend and collection so a mark
// made against one store never short-circuits a load into another.
func ScopedPrefix(prefix, backend, collection string) string {
	return prefix + backend + ":" + collection + ":"
}
