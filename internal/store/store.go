// Package store abstracts the document database holding news articles.
// Documents live in a single collection and are keyed by the article id.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/bilgisen/newsseed/internal/config"
	"github.com/bilgisen/newsseed/internal/credentials"
)

var (
	// ErrNotFound indicates that no document exists under the requested id
	ErrNotFound = errors.New("document not found")

	// ErrAlreadyExists indicates that Create found a document under its id
	ErrAlreadyExists = errors.New("document already exists")
)

// Store is a collection of documents keyed by id
type Store interface {
	// Exists reports whether a document is stored under id
	Exists(ctx context.Context, id string) (bool, error)
	// Get returns the full document or ErrNotFound
	Get(ctx context.Context, id string) (map[string]any, error)
	// Create writes doc under id. It never overwrites: an existing
	// document makes it fail with ErrAlreadyExists.
	Create(ctx context.Context, id string, doc map[string]any) error
	// Update overwrites only the named fields of an existing document
	Update(ctx context.Context, id string, fields map[string]any) error
	Close() error
}

// Open connects to the backend selected in cfg
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendFirestore:
		sa, err := credentials.Load(cfg.CredentialsPath)
		if err != nil {
			return nil, err
		}
		return NewFirestoreStore(ctx, sa, cfg.Collection)
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.Collection)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
