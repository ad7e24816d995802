package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tsundoku/internal/modules/goal/adapter/out"
	"tsundoku/internal/modules/goal/domain"
	"tsundoku/internal/platform/storage"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func TestFileGoalsDataStoreDefaultsWhenAbsent(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	datasets := storage.NewDatasetStore(filepath.Join(t.TempDir(), ".tsundoku"))
	store := out.NewFileGoalsDataStore(datasets, fixedClock{now: now})

	data, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	target, ok := data.FindTarget(domain.GoalTypeYear, "2024")
	if !ok || target.TargetVolumes != domain.DefaultAnnualTarget {
		t.Fatalf("defaults %+v", data)
	}
}

func TestFileGoalsDataStoreDefaultsWhenCorrupt(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	dir := filepath.Join(t.TempDir(), ".tsundoku")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "goals-data.json"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := out.NewFileGoalsDataStore(storage.NewDatasetStore(dir), fixedClock{now: now})

	data, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := data.FindTarget(domain.GoalTypeYear, "2024"); !ok {
		t.Fatalf("corrupt dataset should degrade to defaults: %+v", data)
	}
}

func TestFileGoalsDataStoreRoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	datasets := storage.NewDatasetStore(filepath.Join(t.TempDir(), ".tsundoku"))
	store := out.NewFileGoalsDataStore(datasets, fixedClock{now: now})

	saved := domain.GoalsData{
		Targets:         []domain.Target{{GoalType: domain.GoalTypeMonth, PeriodKey: "2024-06", TargetVolumes: 4, CreatedAt: now}},
		CustomGoals:     []domain.CustomGoal{},
		ActiveSelection: domain.Selection{GoalType: domain.GoalTypeMonth, PeriodKey: "2024-06"},
	}
	if err := store.Save(context.Background(), saved, now); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := loaded.FindTarget(domain.GoalTypeMonth, "2024-06"); !ok {
		t.Fatalf("loaded %+v", loaded)
	}
	if loaded.ActiveSelection != saved.ActiveSelection {
		t.Fatalf("selection %+v", loaded.ActiveSelection)
	}
	if !store.UpdatedAt(context.Background()).Equal(now) {
		t.Fatalf("marker %v", store.UpdatedAt(context.Background()))
	}
}

func TestFileSettingsStoreDefaultsAndRoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	datasets := storage.NewDatasetStore(filepath.Join(t.TempDir(), ".tsundoku"))
	store := out.NewFileSettingsStore(datasets)

	settings, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if settings.VolumeDeadlines == nil || settings.AnnualGoals == nil {
		t.Fatalf("defaults should have non-nil collections: %+v", settings)
	}

	settings.AnnualGoals = append(settings.AnnualGoals, domain.AnnualGoal{Year: 2024, TargetVolumes: 30})
	settings.VolumeDeadlines["v1"] = "2024-07-01"
	if err := store.Save(context.Background(), settings, now); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.AnnualTarget(2024) != 30 || loaded.VolumeDeadlines["v1"] != "2024-07-01" {
		t.Fatalf("loaded %+v", loaded)
	}
}

func TestFileSnapshotStoreRoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	datasets := storage.NewDatasetStore(filepath.Join(t.TempDir(), ".tsundoku"))
	store := out.NewFileSnapshotStore(datasets)

	empty, err := store.Load(context.Background())
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty load: %v %v", empty, err)
	}

	doneAt := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	snapshots := map[string]domain.Snapshot{
		"month:2024-01": {
			GoalType:  "month",
			PeriodKey: "2024-01",
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
			ClosedAt:  now,
			Completed: map[string]time.Time{"v1": doneAt},
		},
	}
	if err := store.Save(context.Background(), snapshots, now); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	frozen, ok := loaded["month:2024-01"]
	if !ok || !frozen.Completed["v1"].Equal(doneAt) {
		t.Fatalf("loaded %+v", loaded)
	}
}

func TestFileCompletionMarker(t *testing.T) {
	t.Parallel()
	datasets := storage.NewDatasetStore(filepath.Join(t.TempDir(), ".tsundoku"))
	marker := out.NewFileCompletionMarker(datasets)

	if !marker.UpdatedAt(context.Background()).IsZero() {
		t.Fatalf("fresh marker should be zero")
	}
	stamp := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	if err := marker.Set(context.Background(), stamp); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !marker.UpdatedAt(context.Background()).Equal(stamp) {
		t.Fatalf("marker %v", marker.UpdatedAt(context.Background()))
	}
}
