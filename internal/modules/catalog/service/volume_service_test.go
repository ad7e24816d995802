package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tsundoku/internal/modules/catalog/domain"
	"tsundoku/internal/modules/catalog/service"
	apperrors "tsundoku/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeID struct{ value string }

func (f fakeID) New() string { return f.value }

type fakeVolumeStore struct {
	docs map[string]domain.VolumeDocument
}

func (f *fakeVolumeStore) Save(_ context.Context, doc domain.VolumeDocument) (string, error) {
	if f.docs == nil {
		f.docs = map[string]domain.VolumeDocument{}
	}
	f.docs[doc.Volume.ID] = doc
	return doc.Volume.Slug + ".md", nil
}

func (f *fakeVolumeStore) FindByID(_ context.Context, id string) (domain.VolumeDocument, error) {
	doc, ok := f.docs[id]
	if !ok {
		return domain.VolumeDocument{}, apperrors.ErrNotFound
	}
	return doc, nil
}

func (f *fakeVolumeStore) List(context.Context) ([]domain.VolumeDocument, error) {
	out := make([]domain.VolumeDocument, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out, nil
}

type fakeProjector struct {
	upserts []string
	resets  int
}

func (f *fakeProjector) UpsertVolume(_ context.Context, volume domain.Volume) error {
	f.upserts = append(f.upserts, volume.ID)
	return nil
}

func (f *fakeProjector) Reset(context.Context) error {
	f.resets++
	return nil
}

type fakePageCounter struct {
	pages int
	err   error
	calls int
}

func (f *fakePageCounter) CountPages(context.Context, string) (int, error) {
	f.calls++
	return f.pages, f.err
}

func newVolumeService(now time.Time, counter *fakePageCounter) (*service.VolumeService, *fakeVolumeStore, *fakeProjector) {
	store := &fakeVolumeStore{}
	projector := &fakeProjector{}
	svc := service.NewVolumeService(fakeClock{now: now}, fakeID{value: "vol-1"}, store, projector, counter)
	return svc, store, projector
}

func TestAddVolumeCountsPDFPages(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	counter := &fakePageCounter{pages: 412}
	svc, store, projector := newVolumeService(now, counter)

	volume, err := svc.AddVolume(context.Background(), "Dune", "Dune Chronicles", "/books/dune.PDF", 0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if volume.PageCount != 412 {
		t.Fatalf("page count %d, want 412", volume.PageCount)
	}
	if counter.calls != 1 {
		t.Fatalf("counter calls %d", counter.calls)
	}
	if volume.Slug != "dune" {
		t.Fatalf("slug %q", volume.Slug)
	}
	if _, ok := store.docs["vol-1"]; !ok {
		t.Fatalf("volume not persisted")
	}
	if len(projector.upserts) != 1 {
		t.Fatalf("projector upserts %v", projector.upserts)
	}
}

func TestAddVolumeExplicitCountSkipsCounter(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	counter := &fakePageCounter{pages: 412}
	svc, _, _ := newVolumeService(now, counter)

	volume, err := svc.AddVolume(context.Background(), "Dune", "", "/books/dune.pdf", 300)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if volume.PageCount != 300 {
		t.Fatalf("page count %d, want the explicit 300", volume.PageCount)
	}
	if counter.calls != 0 {
		t.Fatalf("counter should not run with an explicit count")
	}
}

func TestAddVolumeDegradesOnCounterFailure(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	counter := &fakePageCounter{err: errors.New("encrypted")}
	svc, _, _ := newVolumeService(now, counter)

	volume, err := svc.AddVolume(context.Background(), "Dune", "", "/books/dune.pdf", 0)
	if err != nil {
		t.Fatalf("add should survive a failed count: %v", err)
	}
	if volume.PageCount != 0 {
		t.Fatalf("page count %d, want unknown", volume.PageCount)
	}
}

func TestAddVolumeRejectsBadInput(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newVolumeService(now, &fakePageCounter{})

	if _, err := svc.AddVolume(context.Background(), "  ", "", "", 0); err == nil {
		t.Fatalf("blank title should fail")
	}
	if _, err := svc.AddVolume(context.Background(), "Dune", "", "", -1); err == nil {
		t.Fatalf("negative page count should fail")
	}
}

func TestUpdateProgressClampsAndCompletes(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newVolumeService(now, &fakePageCounter{})
	if _, err := svc.AddVolume(context.Background(), "Dune", "", "", 300); err != nil {
		t.Fatalf("add: %v", err)
	}

	volume, err := svc.UpdateProgress(context.Background(), "vol-1", 150)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if volume.CurrentPage != 150 || volume.Completed {
		t.Fatalf("volume %+v", volume)
	}
	if volume.LastProgressUpdate == nil || !volume.LastProgressUpdate.Equal(now) {
		t.Fatalf("progress update stamp %v", volume.LastProgressUpdate)
	}

	volume, err = svc.UpdateProgress(context.Background(), "vol-1", 999)
	if err != nil {
		t.Fatalf("update past total: %v", err)
	}
	if volume.CurrentPage != 300 {
		t.Fatalf("page should clamp to total, got %d", volume.CurrentPage)
	}
	if !volume.Completed {
		t.Fatalf("reaching the total should complete the volume")
	}

	volume, err = svc.UpdateProgress(context.Background(), "vol-1", -5)
	if err != nil {
		t.Fatalf("negative page: %v", err)
	}
	if volume.CurrentPage != 0 {
		t.Fatalf("negative page should clamp to 0, got %d", volume.CurrentPage)
	}

	if _, err := svc.UpdateProgress(context.Background(), "ghost", 10); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown volume: %v", err)
	}
}

func TestMarkCompletedAndPatchCompletion(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, store, _ := newVolumeService(now, &fakePageCounter{})
	if _, err := svc.AddVolume(context.Background(), "Dune", "", "", 300); err != nil {
		t.Fatalf("add: %v", err)
	}

	volume, err := svc.MarkCompleted(context.Background(), "vol-1")
	if err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if !volume.Completed {
		t.Fatalf("volume %+v", volume)
	}

	completedAt := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	if err := svc.PatchCompletion(context.Background(), "vol-1", completedAt); err != nil {
		t.Fatalf("patch: %v", err)
	}
	patched := store.docs["vol-1"].Volume
	if patched.CompletedAt == nil || !patched.CompletedAt.Equal(completedAt) {
		t.Fatalf("completed at %v", patched.CompletedAt)
	}
}

func TestReindexRebuildsProjection(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _, projector := newVolumeService(now, &fakePageCounter{})
	if _, err := svc.AddVolume(context.Background(), "Dune", "", "", 300); err != nil {
		t.Fatalf("add: %v", err)
	}

	projector.upserts = nil
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if projector.resets != 1 {
		t.Fatalf("resets %d", projector.resets)
	}
	if len(projector.upserts) != 1 {
		t.Fatalf("upserts after reindex %v", projector.upserts)
	}
}
