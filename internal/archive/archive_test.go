package archive

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, key string, _ []byte) error {
	f.keys = append(f.keys, key)
	return f.err
}

func fixedArchive(t *testing.T, u Uploader) *Archive {
	t.Helper()
	a, err := New(t.TempDir(), u)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	a.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }
	return a
}

func TestSnapshotWritesDatedFile(t *testing.T) {
	up := &fakeUploader{}
	a := fixedArchive(t, up)

	path, err := a.Snapshot(context.Background(), "news/a1", map[string]any{"headline": "H"})
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	wantPath := filepath.Join(a.basePath, "2024", "03", "05", "1709632800_news_a1.json")
	if path != wantPath {
		t.Errorf("Expected path %s, got %s", wantPath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	var snap struct {
		ID       string         `json:"id"`
		Document map[string]any `json:"document"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("Snapshot is not valid JSON: %v", err)
	}
	if snap.ID != "news/a1" || snap.Document["headline"] != "H" {
		t.Errorf("Unexpected snapshot content %+v", snap)
	}

	if len(up.keys) != 1 || up.keys[0] != "2024/03/05/1709632800_news_a1.json" {
		t.Errorf("Unexpected upload keys %v", up.keys)
	}
}

func TestSnapshotReportsUploadFailure(t *testing.T) {
	a := fixedArchive(t, &fakeUploader{err: errors.New("403")})

	path, err := a.Snapshot(context.Background(), "a1", map[string]any{})
	if err == nil {
		t.Fatal("Expected upload error")
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("Expected local snapshot to exist despite upload failure: %v", statErr)
	}
}

func TestSnapshotHonoursCancelledContext(t *testing.T) {
	a := fixedArchive(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Snapshot(ctx, "a1", map[string]any{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestConcurrentSnapshotsOfDistinctDocuments(t *testing.T) {
	a := fixedArchive(t, nil)
	ids := []string{"a1", "a2", "a3", "a4"}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = a.Snapshot(context.Background(), id, map[string]any{"id": id})
		}(i, id)
	}
	wg.Wait()

	for i, id := range ids {
		if errs[i] != nil {
			t.Errorf("Snapshot of %s returned error: %v", id, errs[i])
			continue
		}
		path := filepath.Join(a.basePath, "2024", "03", "05", "1709632800_"+id+".json")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected snapshot for %s: %v", id, err)
		}
	}
}
