package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tsundoku/internal/platform/storage"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDatasetSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	store := storage.NewDatasetStore(filepath.Join(t.TempDir(), ".tsundoku"))
	stamp := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	if err := store.Save("sample", sample{Name: "a", Count: 3}, stamp); err != nil {
		t.Fatalf("save: %v", err)
	}
	var got sample
	if err := store.Load("sample", &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "a" || got.Count != 3 {
		t.Fatalf("round trip %+v", got)
	}
	if !store.UpdatedAt("sample").Equal(stamp) {
		t.Fatalf("marker %v", store.UpdatedAt("sample"))
	}
}

func TestDatasetLoadMissingFile(t *testing.T) {
	t.Parallel()
	store := storage.NewDatasetStore(filepath.Join(t.TempDir(), ".tsundoku"))
	var got sample
	if err := store.Load("absent", &got); !os.IsNotExist(err) {
		t.Fatalf("missing dataset: %v", err)
	}
	if !store.UpdatedAt("absent").IsZero() {
		t.Fatalf("unknown dataset should have a zero marker")
	}
}

func TestDatasetLoadCorruptFile(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), ".tsundoku")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := storage.NewDatasetStore(dir)
	var got sample
	if err := store.Load("broken", &got); err == nil {
		t.Fatalf("corrupt dataset should fail to decode")
	}
}

func TestSetUpdatedAtWithoutDataset(t *testing.T) {
	t.Parallel()
	store := storage.NewDatasetStore(filepath.Join(t.TempDir(), ".tsundoku"))
	stamp := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	if err := store.SetUpdatedAt("completions", stamp); err != nil {
		t.Fatalf("set marker: %v", err)
	}
	if !store.UpdatedAt("completions").Equal(stamp) {
		t.Fatalf("marker %v", store.UpdatedAt("completions"))
	}

	// The marker survives alongside other datasets' stamps.
	if err := store.Save("sample", sample{}, stamp.Add(time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !store.UpdatedAt("completions").Equal(stamp) {
		t.Fatalf("marker lost after another save: %v", store.UpdatedAt("completions"))
	}
}
