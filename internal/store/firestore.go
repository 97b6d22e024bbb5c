package store

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bilgisen/newsseed/internal/credentials"
)

// FirestoreStore keeps documents in a Firestore collection
type FirestoreStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

// NewFirestoreStore initializes a Firebase app from the service account and
// opens its Firestore client.
func NewFirestoreStore(ctx context.Context, sa *credentials.ServiceAccount, collection string) (*FirestoreStore, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: sa.ProjectID}, option.WithCredentialsJSON(sa.Raw))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open firestore client: %w", err)
	}

	return &FirestoreStore{
		client:     client,
		collection: client.Collection(collection),
	}, nil
}

func (s *FirestoreStore) Exists(ctx context.Context, id string) (bool, error) {
	snap, err := s.collection.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("firestore get %s: %w", id, err)
	}
	return snap.Exists(), nil
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (map[string]any, error) {
	snap, err := s.collection.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("firestore get %s: %w", id, err)
	}
	if !snap.Exists() {
		return nil, ErrNotFound
	}
	return snap.Data(), nil
}

func (s *FirestoreStore) Create(ctx context.Context, id string, doc map[string]any) error {
	_, err := s.collection.Doc(id).Create(ctx, doc)
	if status.Code(err) == codes.AlreadyExists {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("firestore create %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, id string, fields map[string]any) error {
	_, err := s.collection.Doc(id).Update(ctx, firestoreUpdates(fields))
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("firestore update %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// firestoreUpdates builds one update per field. Names go through FieldPath
// so a dot is part of the name rather than a path separator.
func firestoreUpdates(fields map[string]any) []firestore.Update {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	updates := make([]firestore.Update, 0, len(names))
	for _, name := range names {
		updates = append(updates, firestore.Update{
			FieldPath: firestore.FieldPath{name},
			Value:     fields[name],
		})
	}
	return updates
}
