package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"tsundoku/internal/modules/goal/domain"
	"tsundoku/internal/modules/goal/dto"
	goalin "tsundoku/internal/modules/goal/port/in"
	goalout "tsundoku/internal/modules/goal/port/out"
	"tsundoku/internal/modules/goal/service"
	"tsundoku/internal/platform/clock"
	apperrors "tsundoku/internal/platform/errors"
)

type Interactor struct {
	clock         clock.Clock
	goals         *service.GoalService
	ledger        *service.LedgerService
	snapshots     *service.SnapshotService
	progress      *service.ProgressService
	dataStore     goalout.GoalsDataStore
	settingsStore goalout.SettingsStore
	snapshotStore goalout.SnapshotStore
	marker        goalout.CompletionMarker
	progressLog   goalout.ProgressLog
}

func NewInteractor(
	clk clock.Clock,
	goals *service.GoalService,
	ledger *service.LedgerService,
	snapshots *service.SnapshotService,
	progress *service.ProgressService,
	dataStore goalout.GoalsDataStore,
	settingsStore goalout.SettingsStore,
	snapshotStore goalout.SnapshotStore,
	marker goalout.CompletionMarker,
	progressLog goalout.ProgressLog,
) goalin.Usecase {
	return &Interactor{
		clock:         clk,
		goals:         goals,
		ledger:        ledger,
		snapshots:     snapshots,
		progress:      progress,
		dataStore:     dataStore,
		settingsStore: settingsStore,
		snapshotStore: snapshotStore,
		marker:        marker,
		progressLog:   progressLog,
	}
}

func (i *Interactor) SetTarget(ctx context.Context, input dto.SetTargetInput) error {
	return i.goals.SetTarget(ctx, domain.GoalType(input.GoalType), input.PeriodKey, input.TargetVolumes)
}

func (i *Interactor) RemoveTarget(ctx context.Context, goalType, periodKey string) error {
	return i.goals.RemoveTarget(ctx, domain.GoalType(goalType), periodKey)
}

func (i *Interactor) Select(ctx context.Context, input dto.SelectInput) error {
	selection, err := i.toSelection(input)
	if err != nil {
		return err
	}
	return i.goals.SetActiveSelection(ctx, selection)
}

func (i *Interactor) CreateCustomGoal(ctx context.Context, input dto.CreateCustomGoalInput) (dto.CustomGoalOutput, error) {
	goal, err := i.goals.CreateCustomGoal(ctx, input.Name, input.TargetVolumes, input.StartDate, input.EndDate)
	if err != nil {
		return dto.CustomGoalOutput{}, err
	}
	return toCustomGoalOutput(goal), nil
}

func (i *Interactor) UpdateCustomGoal(ctx context.Context, input dto.UpdateCustomGoalInput) error {
	return i.goals.UpdateCustomGoal(ctx, domain.CustomGoal{
		ID:            input.ID,
		Name:          input.Name,
		TargetVolumes: input.TargetVolumes,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Enabled:       input.Enabled,
	})
}

func (i *Interactor) RemoveCustomGoal(ctx context.Context, id string) error {
	return i.goals.RemoveCustomGoal(ctx, id)
}

func (i *Interactor) ListGoals(ctx context.Context) (dto.GoalsOutput, error) {
	data, err := i.goals.Load(ctx)
	if err != nil {
		return dto.GoalsOutput{}, err
	}
	out := dto.GoalsOutput{
		Active: dto.SelectInput{
			GoalType:  string(data.ActiveSelection.GoalType),
			PeriodKey: data.ActiveSelection.PeriodKey,
			CustomID:  data.ActiveSelection.CustomID,
		},
	}
	for _, target := range data.Targets {
		out.Targets = append(out.Targets, dto.TargetOutput{
			GoalType:      string(target.GoalType),
			PeriodKey:     target.PeriodKey,
			TargetVolumes: target.TargetVolumes,
		})
	}
	for _, goal := range data.CustomGoals {
		out.CustomGoals = append(out.CustomGoals, toCustomGoalOutput(goal))
	}
	return out, nil
}

// Status reports progress for the active selection. It first backfills the
// completion ledger and freezes any closed periods, so the report is
// always computed against settled state.
func (i *Interactor) Status(ctx context.Context) (dto.ReportOutput, error) {
	data, err := i.goals.Load(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return i.report(ctx, data, data.ActiveSelection)
}

func (i *Interactor) StatusFor(ctx context.Context, input dto.SelectInput) (dto.ReportOutput, error) {
	selection, err := i.toSelection(input)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	data, err := i.goals.Load(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return i.report(ctx, data, selection)
}

func (i *Interactor) report(ctx context.Context, data domain.GoalsData, selection domain.Selection) (dto.ReportOutput, error) {
	settings, err := i.goals.LoadSettings(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	volumes, ledger, _, err := i.ledger.Backfill(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	if _, err := i.snapshots.FinalizeClosed(ctx, data, ledger); err != nil {
		return dto.ReportOutput{}, err
	}
	snapshots, err := i.snapshots.Load(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	report := i.progress.Report(selection, data, settings, volumes, ledger, snapshots)
	return toReportOutput(report), nil
}

func (i *Interactor) RecentPeriods(_ context.Context, goalType string, n int) ([]dto.PeriodOutput, error) {
	gt := domain.GoalType(goalType)
	if err := gt.Validate(); err != nil || gt == domain.GoalTypeCustom {
		return nil, fmt.Errorf("%w: recent periods need a calendar goal type", apperrors.ErrInvalidInput)
	}
	periods := domain.RecentPeriods(gt, n, i.clock.Now())
	out := make([]dto.PeriodOutput, 0, len(periods))
	for _, period := range periods {
		out = append(out, dto.PeriodOutput{
			GoalType:  string(period.GoalType),
			PeriodKey: period.PeriodKey,
			Label:     period.Label,
			Start:     period.Start,
			End:       period.End,
		})
	}
	return out, nil
}

func (i *Interactor) Backfill(ctx context.Context) (int, error) {
	_, _, added, err := i.ledger.Backfill(ctx)
	return added, err
}

func (i *Interactor) FinalizeClosedSnapshots(ctx context.Context) (int, error) {
	data, err := i.goals.Load(ctx)
	if err != nil {
		return 0, err
	}
	_, ledger, err := i.ledger.Load(ctx)
	if err != nil {
		return 0, err
	}
	return i.snapshots.FinalizeClosed(ctx, data, ledger)
}

func (i *Interactor) SetAnnualGoal(ctx context.Context, year, targetVolumes int) error {
	return i.goals.SetAnnualGoal(ctx, year, targetVolumes)
}

func (i *Interactor) SetVolumeDeadline(ctx context.Context, volumeID, date string) error {
	return i.goals.SetVolumeDeadline(ctx, volumeID, date)
}

func (i *Interactor) RemoveVolumeDeadline(ctx context.Context, volumeID string) error {
	return i.goals.RemoveVolumeDeadline(ctx, volumeID)
}

// DeadlineReport computes the pages-per-day pace needed to finish one
// volume by its deadline.
func (i *Interactor) DeadlineReport(ctx context.Context, volumeID string) (dto.DeadlineOutput, error) {
	settings, err := i.goals.LoadSettings(ctx)
	if err != nil {
		return dto.DeadlineOutput{}, err
	}
	deadlineStr, ok := settings.VolumeDeadlines[volumeID]
	if !ok {
		return dto.DeadlineOutput{}, fmt.Errorf("%w: no deadline for volume %s", apperrors.ErrNotFound, volumeID)
	}
	now := i.clock.Now()
	deadline, parsed := domain.ParseLocalDate(deadlineStr, now.Location())
	if !parsed {
		return dto.DeadlineOutput{}, fmt.Errorf("%w: malformed deadline %q", apperrors.ErrInvalidInput, deadlineStr)
	}
	volumes, _, err := i.ledger.Load(ctx)
	if err != nil {
		return dto.DeadlineOutput{}, err
	}
	pagesLeft := 0
	for _, v := range volumes {
		if v.ID != volumeID {
			continue
		}
		if v.PageCount > v.CurrentPage {
			pagesLeft = v.PageCount - v.CurrentPage
		}
		break
	}
	days := domain.DaysRemaining(now, deadline)
	pace := 0
	if days > 0 {
		pace = int(math.Ceil(float64(pagesLeft) / float64(days)))
	}
	return dto.DeadlineOutput{
		VolumeID:      volumeID,
		Deadline:      deadlineStr,
		DaysRemaining: days,
		PagesLeft:     pagesLeft,
		PagesPerDay:   pace,
	}, nil
}

func (i *Interactor) ExportState(ctx context.Context) (dto.SyncState, error) {
	settings, err := i.goals.LoadSettings(ctx)
	if err != nil {
		return dto.SyncState{}, err
	}
	data, err := i.goals.Load(ctx)
	if err != nil {
		return dto.SyncState{}, err
	}
	snapshots, err := i.snapshots.Load(ctx)
	if err != nil {
		return dto.SyncState{}, err
	}
	_, ledger, err := i.ledger.Load(ctx)
	if err != nil {
		return dto.SyncState{}, err
	}
	settingsRaw, err := json.Marshal(settings)
	if err != nil {
		return dto.SyncState{}, fmt.Errorf("encode settings: %w", err)
	}
	dataRaw, err := json.Marshal(data)
	if err != nil {
		return dto.SyncState{}, fmt.Errorf("encode goals data: %w", err)
	}
	snapshotsRaw, err := json.Marshal(snapshots)
	if err != nil {
		return dto.SyncState{}, fmt.Errorf("encode snapshots: %w", err)
	}
	return dto.SyncState{
		Settings:             dto.SettingsPayload{Raw: settingsRaw, UpdatedAt: i.settingsStore.UpdatedAt(ctx)},
		GoalsData:            dto.GoalsDataPayload{Raw: dataRaw, UpdatedAt: i.dataStore.UpdatedAt(ctx)},
		Snapshots:            dto.SnapshotsPayload{Raw: snapshotsRaw, UpdatedAt: i.snapshotStore.UpdatedAt(ctx)},
		Completions:          ledger,
		CompletionsUpdatedAt: i.marker.UpdatedAt(ctx),
	}, nil
}

// MergeSettings adopts a remote settings copy wholesale, last-write-wins;
// the local marker takes the remote timestamp. Malformed payloads degrade
// to defaults rather than failing.
func (i *Interactor) MergeSettings(ctx context.Context, raw []byte, updatedAt time.Time) error {
	settings := domain.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		settings = domain.DefaultSettings()
	}
	if settings.VolumeDeadlines == nil {
		settings.VolumeDeadlines = map[string]string{}
	}
	return i.settingsStore.Save(ctx, settings, updatedAt)
}

func (i *Interactor) MergeGoalsData(ctx context.Context, raw []byte, updatedAt time.Time) error {
	data := domain.DefaultGoalsData(i.clock.Now())
	if err := json.Unmarshal(raw, &data); err != nil {
		data = domain.DefaultGoalsData(i.clock.Now())
	}
	return i.dataStore.Save(ctx, data, updatedAt)
}

func (i *Interactor) MergeSnapshots(ctx context.Context, raw []byte, updatedAt time.Time) error {
	snapshots := map[string]domain.Snapshot{}
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		snapshots = map[string]domain.Snapshot{}
	}
	return i.snapshotStore.Save(ctx, snapshots, updatedAt)
}

func (i *Interactor) MergeCompletions(ctx context.Context, incoming map[string]string, updatedAt time.Time) (int, error) {
	return i.ledger.ApplyMerge(ctx, incoming, updatedAt)
}

func (i *Interactor) toSelection(input dto.SelectInput) (domain.Selection, error) {
	gt := domain.GoalType(input.GoalType)
	if err := gt.Validate(); err != nil {
		return domain.Selection{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if gt == domain.GoalTypeCustom {
		if input.CustomID == "" {
			return domain.Selection{}, fmt.Errorf("%w: custom selection needs a goal id", apperrors.ErrInvalidInput)
		}
		return domain.Selection{GoalType: gt, CustomID: input.CustomID}, nil
	}
	periodKey := input.PeriodKey
	if periodKey == "" {
		periodKey = domain.CurrentPeriodKey(gt, i.clock.Now())
	}
	return domain.Selection{GoalType: gt, PeriodKey: periodKey}, nil
}

func toCustomGoalOutput(goal domain.CustomGoal) dto.CustomGoalOutput {
	return dto.CustomGoalOutput{
		ID:            goal.ID,
		Name:          goal.Name,
		TargetVolumes: goal.TargetVolumes,
		StartDate:     goal.StartDate,
		EndDate:       goal.EndDate,
		Enabled:       goal.Enabled,
	}
}

func toReportOutput(report domain.Report) dto.ReportOutput {
	return dto.ReportOutput{
		GoalType:                string(report.GoalType),
		PeriodKey:               report.PeriodKey,
		Label:                   report.Label,
		TargetVolumes:           report.TargetVolumes,
		CompletedVolumes:        report.CompletedVolumes,
		InProgressVolumes:       report.InProgressVolumes,
		PartialProgress:         report.PartialProgress,
		TotalProgress:           report.TotalProgress,
		ProgressPercent:         report.ProgressPercent,
		ExpectedProgressPercent: report.ExpectedProgressPercent,
		DaysRemaining:           report.DaysRemaining,
		PagesPerDayForGoal:      report.PagesPerDayForGoal,
		Status:                  string(report.Status),
		Closed:                  report.Closed,
		FromSnapshot:            report.FromSnapshot,
	}
}
