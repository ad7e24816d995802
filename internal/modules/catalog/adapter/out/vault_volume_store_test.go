package out_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"tsundoku/internal/modules/catalog/adapter/out"
	"tsundoku/internal/modules/catalog/domain"
	apperrors "tsundoku/internal/platform/errors"
)

func sampleVolume(now time.Time) domain.Volume {
	return domain.Volume{
		ID:        "vol-1",
		Title:     "Dune",
		Series:    "Dune Chronicles",
		Slug:      "dune",
		FilePath:  "/books/dune.pdf",
		PageCount: 412,
		AddedAt:   now,
		UpdatedAt: now,
	}
}

func TestVaultStoreSaveAndListRoundTrip(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	store := out.NewVaultVolumeStore(vault)
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	doneAt := now.AddDate(0, 0, 5)
	volume := sampleVolume(now)
	volume.CurrentPage = 412
	volume.Completed = true
	volume.CompletedAt = &doneAt
	volume.LastProgressUpdate = &doneAt

	notePath, err := store.Save(context.Background(), domain.VolumeDocument{Volume: volume})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(notePath, "dune.md") {
		t.Fatalf("note path %q", notePath)
	}

	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("listed %d documents", len(docs))
	}
	loaded := docs[0].Volume
	if loaded.ID != "vol-1" || loaded.Title != "Dune" || loaded.PageCount != 412 {
		t.Fatalf("loaded %+v", loaded)
	}
	if !loaded.Completed || loaded.CompletedAt == nil || !loaded.CompletedAt.Equal(doneAt) {
		t.Fatalf("completion fields %+v", loaded)
	}
	if loaded.LastProgressUpdate == nil || !loaded.LastProgressUpdate.Equal(doneAt) {
		t.Fatalf("progress update %v", loaded.LastProgressUpdate)
	}
	if strings.TrimSpace(docs[0].Body) != "## Notes" {
		t.Fatalf("default body %q", docs[0].Body)
	}
}

func TestVaultStorePreservesNoteBodyOnResave(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	store := out.NewVaultVolumeStore(vault)
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	volume := sampleVolume(now)
	if _, err := store.Save(context.Background(), domain.VolumeDocument{Volume: volume, Body: "## Notes\n\nGreat worldbuilding.\n"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A state-only resave must keep the reader's notes.
	volume.CurrentPage = 100
	if _, err := store.Save(context.Background(), domain.VolumeDocument{Volume: volume}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	doc, err := store.FindByID(context.Background(), "vol-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(doc.Body, "Great worldbuilding.") {
		t.Fatalf("body lost: %q", doc.Body)
	}
	if doc.Volume.CurrentPage != 100 {
		t.Fatalf("current page %d", doc.Volume.CurrentPage)
	}
}

func TestVaultStoreFindMissingVolume(t *testing.T) {
	t.Parallel()
	store := out.NewVaultVolumeStore(t.TempDir())
	if _, err := store.FindByID(context.Background(), "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing volume: %v", err)
	}
}

func TestVaultStoreListEmptyVault(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	if err := os.MkdirAll(vault, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	store := out.NewVaultVolumeStore(vault)
	docs, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("empty vault listed %d documents", len(docs))
	}
}
