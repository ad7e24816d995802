package out

import (
	"context"
	"time"

	"tsundoku/internal/modules/goal/domain"
	goalout "tsundoku/internal/modules/goal/port/out"
	"tsundoku/internal/platform/clock"
	"tsundoku/internal/platform/storage"
)

const (
	datasetSettings    = "goal-settings"
	datasetGoalsData   = "goals-data"
	datasetSnapshots   = "goal-snapshots"
	datasetCompletions = "completions"
)

// FileGoalsDataStore keeps the goals aggregate in one JSON dataset. Absent
// or unparseable data degrades to the built-in defaults, never an error.
type FileGoalsDataStore struct {
	store *storage.DatasetStore
	clock clock.Clock
}

func NewFileGoalsDataStore(store *storage.DatasetStore, clk clock.Clock) goalout.GoalsDataStore {
	return &FileGoalsDataStore{store: store, clock: clk}
}

func (s *FileGoalsDataStore) Load(_ context.Context) (domain.GoalsData, error) {
	data := domain.GoalsData{}
	if err := s.store.Load(datasetGoalsData, &data); err != nil {
		return domain.DefaultGoalsData(s.clock.Now()), nil
	}
	if data.Targets == nil && data.CustomGoals == nil && data.ActiveSelection.GoalType == "" {
		return domain.DefaultGoalsData(s.clock.Now()), nil
	}
	if data.CustomGoals == nil {
		data.CustomGoals = []domain.CustomGoal{}
	}
	return data, nil
}

func (s *FileGoalsDataStore) Save(_ context.Context, data domain.GoalsData, updatedAt time.Time) error {
	return s.store.Save(datasetGoalsData, data, updatedAt)
}

func (s *FileGoalsDataStore) UpdatedAt(_ context.Context) time.Time {
	return s.store.UpdatedAt(datasetGoalsData)
}

type FileSettingsStore struct {
	store *storage.DatasetStore
}

func NewFileSettingsStore(store *storage.DatasetStore) goalout.SettingsStore {
	return &FileSettingsStore{store: store}
}

func (s *FileSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	settings := domain.Settings{}
	if err := s.store.Load(datasetSettings, &settings); err != nil {
		return domain.DefaultSettings(), nil
	}
	if settings.AnnualGoals == nil {
		settings.AnnualGoals = []domain.AnnualGoal{}
	}
	if settings.VolumeDeadlines == nil {
		settings.VolumeDeadlines = map[string]string{}
	}
	return settings, nil
}

func (s *FileSettingsStore) Save(_ context.Context, settings domain.Settings, updatedAt time.Time) error {
	return s.store.Save(datasetSettings, settings, updatedAt)
}

func (s *FileSettingsStore) UpdatedAt(_ context.Context) time.Time {
	return s.store.UpdatedAt(datasetSettings)
}

type FileSnapshotStore struct {
	store *storage.DatasetStore
}

func NewFileSnapshotStore(store *storage.DatasetStore) goalout.SnapshotStore {
	return &FileSnapshotStore{store: store}
}

func (s *FileSnapshotStore) Load(_ context.Context) (map[string]domain.Snapshot, error) {
	snapshots := map[string]domain.Snapshot{}
	if err := s.store.Load(datasetSnapshots, &snapshots); err != nil {
		return map[string]domain.Snapshot{}, nil
	}
	return snapshots, nil
}

func (s *FileSnapshotStore) Save(_ context.Context, snapshots map[string]domain.Snapshot, updatedAt time.Time) error {
	return s.store.Save(datasetSnapshots, snapshots, updatedAt)
}

func (s *FileSnapshotStore) UpdatedAt(_ context.Context) time.Time {
	return s.store.UpdatedAt(datasetSnapshots)
}

// FileCompletionMarker tracks only the ledger's last-updated timestamp; the
// timestamps themselves live inside each volume's record.
type FileCompletionMarker struct {
	store *storage.DatasetStore
}

func NewFileCompletionMarker(store *storage.DatasetStore) goalout.CompletionMarker {
	return &FileCompletionMarker{store: store}
}

func (s *FileCompletionMarker) UpdatedAt(_ context.Context) time.Time {
	return s.store.UpdatedAt(datasetCompletions)
}

func (s *FileCompletionMarker) Set(_ context.Context, t time.Time) error {
	return s.store.SetUpdatedAt(datasetCompletions, t)
}
