package in

import (
	"context"
	"time"

	"tsundoku/internal/modules/goal/dto"
)

type Usecase interface {
	SetTarget(ctx context.Context, input dto.SetTargetInput) error
	RemoveTarget(ctx context.Context, goalType, periodKey string) error
	Select(ctx context.Context, input dto.SelectInput) error
	CreateCustomGoal(ctx context.Context, input dto.CreateCustomGoalInput) (dto.CustomGoalOutput, error)
	UpdateCustomGoal(ctx context.Context, input dto.UpdateCustomGoalInput) error
	RemoveCustomGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context) (dto.GoalsOutput, error)

	// Status refreshes the ledger and closed-period snapshots, then reports
	// progress for the active selection (or an explicit one via StatusFor).
	Status(ctx context.Context) (dto.ReportOutput, error)
	StatusFor(ctx context.Context, input dto.SelectInput) (dto.ReportOutput, error)
	RecentPeriods(ctx context.Context, goalType string, n int) ([]dto.PeriodOutput, error)

	Backfill(ctx context.Context) (int, error)
	FinalizeClosedSnapshots(ctx context.Context) (int, error)

	SetAnnualGoal(ctx context.Context, year, targetVolumes int) error
	SetVolumeDeadline(ctx context.Context, volumeID, date string) error
	RemoveVolumeDeadline(ctx context.Context, volumeID string) error
	DeadlineReport(ctx context.Context, volumeID string) (dto.DeadlineOutput, error)

	// Sync surface: export local state and merge remote copies.
	ExportState(ctx context.Context) (dto.SyncState, error)
	MergeSettings(ctx context.Context, raw []byte, updatedAt time.Time) error
	MergeGoalsData(ctx context.Context, raw []byte, updatedAt time.Time) error
	MergeSnapshots(ctx context.Context, raw []byte, updatedAt time.Time) error
	MergeCompletions(ctx context.Context, incoming map[string]string, updatedAt time.Time) (int, error)
}
