package store

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/go-cmp/cmp"

	"github.com/bilgisen/newsseed/internal/config"
)

func TestMemoryStoreCreateNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Create(ctx, "a1", map[string]any{"headline": "first"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	err := s.Create(ctx, "a1", map[string]any{"headline": "second"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}

	if got := s.Doc("a1")["headline"]; got != "first" {
		t.Errorf("Expected original headline to survive, got %v", got)
	}
}

func TestMemoryStoreUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put("a1", map[string]any{"headline": "H", "likes": int64(3)})

	if err := s.Update(ctx, "a1", map[string]any{"headline": "new"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	want := map[string]any{"headline": "new", "likes": int64(3)}
	if diff := cmp.Diff(want, s.Doc("a1")); diff != "" {
		t.Errorf("Unexpected document (-want +got):\n%s", diff)
	}

	if err := s.Update(ctx, "missing", map[string]any{"x": "y"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreGetAndExists(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put("a1", map[string]any{"headline": "H"})

	ok, err := s.Exists(ctx, "a1")
	if err != nil || !ok {
		t.Errorf("Expected a1 to exist, got %v, %v", ok, err)
	}
	ok, err = s.Exists(ctx, "nope")
	if err != nil || ok {
		t.Errorf("Expected nope to be absent, got %v, %v", ok, err)
	}

	doc, err := s.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	doc["headline"] = "mutated"
	if s.Doc("a1")["headline"] != "H" {
		t.Error("Expected Get to return a copy")
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if len(s.Writes()) != 0 {
		t.Errorf("Expected no writes, got %v", s.Writes())
	}
}

func TestMemoryStoreFailOn(t *testing.T) {
	s := NewMemoryStore()
	boom := errors.New("boom")
	s.FailOn(OpCreate, boom)

	if err := s.Create(context.Background(), "a1", map[string]any{}); !errors.Is(err, boom) {
		t.Errorf("Expected injected error, got %v", err)
	}
	if s.Len() != 0 {
		t.Error("Expected failed create to store nothing")
	}
}

func TestFirestoreUpdatesUseLiteralFieldPaths(t *testing.T) {
	got := firestoreUpdates(map[string]any{"title.en": "x", "likes": "4"})

	want := []firestore.Update{
		{FieldPath: firestore.FieldPath{"likes"}, Value: "4"},
		{FieldPath: firestore.FieldPath{"title.en"}, Value: "x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unexpected updates (-want +got):\n%s", diff)
	}
}

func TestOpenRejectsBadCredentials(t *testing.T) {
	cfg := &config.Config{
		Backend:         config.BackendFirestore,
		CredentialsPath: "testdata/does-not-exist.json",
		Collection:      "news",
	}
	if _, err := Open(context.Background(), cfg); err == nil {
		t.Fatal("Expected Open to fail without a credentials file")
	}
}
