package out

import (
	"context"
	"time"

	"tsundoku/internal/modules/goal/domain"
)

// GoalsDataStore persists the goals aggregate. Load substitutes defaults
// when the dataset is absent or unparseable.
type GoalsDataStore interface {
	Load(ctx context.Context) (domain.GoalsData, error)
	Save(ctx context.Context, data domain.GoalsData, updatedAt time.Time) error
	UpdatedAt(ctx context.Context) time.Time
}

type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings, updatedAt time.Time) error
	UpdatedAt(ctx context.Context) time.Time
}

type SnapshotStore interface {
	Load(ctx context.Context) (map[string]domain.Snapshot, error)
	Save(ctx context.Context, snapshots map[string]domain.Snapshot, updatedAt time.Time) error
	UpdatedAt(ctx context.Context) time.Time
}

// ProgressLog is the external reading log and catalog: per-volume page
// position, completed flag, timestamps, and the completed_at patch target
// for ledger back-writes.
type ProgressLog interface {
	ListVolumeStates(ctx context.Context) ([]domain.VolumeState, error)
	PatchCompletion(ctx context.Context, volumeID string, completedAt time.Time) error
}

// CompletionMarker tracks the last-updated timestamp of the completion
// ledger, which has no dataset of its own.
type CompletionMarker interface {
	UpdatedAt(ctx context.Context) time.Time
	Set(ctx context.Context, t time.Time) error
}
