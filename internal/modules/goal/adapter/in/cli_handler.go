package in

import (
	"context"
	"time"

	"tsundoku/internal/modules/goal/dto"
	goalin "tsundoku/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SetTarget(ctx context.Context, goalType, periodKey string, targetVolumes int) error {
	return h.usecase.SetTarget(ctx, dto.SetTargetInput{GoalType: goalType, PeriodKey: periodKey, TargetVolumes: targetVolumes})
}

func (h CLIHandler) RemoveTarget(ctx context.Context, goalType, periodKey string) error {
	return h.usecase.RemoveTarget(ctx, goalType, periodKey)
}

func (h CLIHandler) Select(ctx context.Context, goalType, periodKey, customID string) error {
	return h.usecase.Select(ctx, dto.SelectInput{GoalType: goalType, PeriodKey: periodKey, CustomID: customID})
}

func (h CLIHandler) CreateCustomGoal(ctx context.Context, name string, targetVolumes int, startDate, endDate string) (dto.CustomGoalOutput, error) {
	return h.usecase.CreateCustomGoal(ctx, dto.CreateCustomGoalInput{
		Name:          name,
		TargetVolumes: targetVolumes,
		StartDate:     startDate,
		EndDate:       endDate,
	})
}

func (h CLIHandler) UpdateCustomGoal(ctx context.Context, input dto.UpdateCustomGoalInput) error {
	return h.usecase.UpdateCustomGoal(ctx, input)
}

func (h CLIHandler) RemoveCustomGoal(ctx context.Context, id string) error {
	return h.usecase.RemoveCustomGoal(ctx, id)
}

func (h CLIHandler) ListGoals(ctx context.Context) (dto.GoalsOutput, error) {
	return h.usecase.ListGoals(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.ReportOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) StatusFor(ctx context.Context, goalType, periodKey, customID string) (dto.ReportOutput, error) {
	return h.usecase.StatusFor(ctx, dto.SelectInput{GoalType: goalType, PeriodKey: periodKey, CustomID: customID})
}

func (h CLIHandler) RecentPeriods(ctx context.Context, goalType string, n int) ([]dto.PeriodOutput, error) {
	return h.usecase.RecentPeriods(ctx, goalType, n)
}

func (h CLIHandler) Backfill(ctx context.Context) (int, error) {
	return h.usecase.Backfill(ctx)
}

func (h CLIHandler) FinalizeClosedSnapshots(ctx context.Context) (int, error) {
	return h.usecase.FinalizeClosedSnapshots(ctx)
}

func (h CLIHandler) SetAnnualGoal(ctx context.Context, year, targetVolumes int) error {
	return h.usecase.SetAnnualGoal(ctx, year, targetVolumes)
}

func (h CLIHandler) SetVolumeDeadline(ctx context.Context, volumeID, date string) error {
	return h.usecase.SetVolumeDeadline(ctx, volumeID, date)
}

func (h CLIHandler) RemoveVolumeDeadline(ctx context.Context, volumeID string) error {
	return h.usecase.RemoveVolumeDeadline(ctx, volumeID)
}

func (h CLIHandler) DeadlineReport(ctx context.Context, volumeID string) (dto.DeadlineOutput, error) {
	return h.usecase.DeadlineReport(ctx, volumeID)
}

func (h CLIHandler) ExportState(ctx context.Context) (dto.SyncState, error) {
	return h.usecase.ExportState(ctx)
}

func (h CLIHandler) MergeCompletions(ctx context.Context, incoming map[string]string, updatedAt time.Time) (int, error) {
	return h.usecase.MergeCompletions(ctx, incoming, updatedAt)
}
