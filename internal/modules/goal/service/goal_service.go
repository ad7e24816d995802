package service

import (
	"context"
	"fmt"
	"time"

	"tsundoku/internal/modules/goal/domain"
	goalout "tsundoku/internal/modules/goal/port/out"
	"tsundoku/internal/platform/clock"
	apperrors "tsundoku/internal/platform/errors"
	"tsundoku/internal/platform/id"
)

// GoalService owns the goals aggregate and the settings dataset. Every
// mutation rebuilds the aggregate copy-on-write and persists it whole.
type GoalService struct {
	clock         clock.Clock
	idGen         id.Generator
	dataStore     goalout.GoalsDataStore
	settingsStore goalout.SettingsStore
}

func NewGoalService(clk clock.Clock, idGen id.Generator, dataStore goalout.GoalsDataStore, settingsStore goalout.SettingsStore) *GoalService {
	return &GoalService{clock: clk, idGen: idGen, dataStore: dataStore, settingsStore: settingsStore}
}

func (s *GoalService) Load(ctx context.Context) (domain.GoalsData, error) {
	return s.dataStore.Load(ctx)
}

func (s *GoalService) LoadSettings(ctx context.Context) (domain.Settings, error) {
	return s.settingsStore.Load(ctx)
}

func (s *GoalService) SetTarget(ctx context.Context, goalType domain.GoalType, periodKey string, targetVolumes int) error {
	if targetVolumes <= 0 {
		return fmt.Errorf("%w: target volumes must be positive", apperrors.ErrInvalidInput)
	}
	if goalType == domain.GoalTypeCustom {
		return fmt.Errorf("%w: custom goals have their own lifecycle", apperrors.ErrInvalidInput)
	}
	now := s.clock.Now()
	if _, ok := domain.ResolvePeriod(goalType, periodKey, now.Location()); !ok {
		return fmt.Errorf("%w: malformed period key %q", apperrors.ErrInvalidInput, periodKey)
	}
	data, err := s.dataStore.Load(ctx)
	if err != nil {
		return err
	}
	targets := make([]domain.Target, 0, len(data.Targets)+1)
	updated := false
	for _, target := range data.Targets {
		if target.GoalType == goalType && target.PeriodKey == periodKey {
			target.TargetVolumes = targetVolumes
			updated = true
		}
		targets = append(targets, target)
	}
	if !updated {
		targets = append(targets, domain.Target{
			GoalType:      goalType,
			PeriodKey:     periodKey,
			TargetVolumes: targetVolumes,
			CreatedAt:     now,
		})
	}
	data.Targets = targets
	return s.dataStore.Save(ctx, data, now)
}

func (s *GoalService) RemoveTarget(ctx context.Context, goalType domain.GoalType, periodKey string) error {
	data, err := s.dataStore.Load(ctx)
	if err != nil {
		return err
	}
	targets := make([]domain.Target, 0, len(data.Targets))
	removed := false
	for _, target := range data.Targets {
		if target.GoalType == goalType && target.PeriodKey == periodKey {
			removed = true
			continue
		}
		targets = append(targets, target)
	}
	if !removed {
		return nil
	}
	data.Targets = targets
	return s.dataStore.Save(ctx, data, s.clock.Now())
}

func (s *GoalService) SetActiveSelection(ctx context.Context, selection domain.Selection) error {
	if err := selection.GoalType.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	data, err := s.dataStore.Load(ctx)
	if err != nil {
		return err
	}
	data.ActiveSelection = selection
	return s.dataStore.Save(ctx, data, s.clock.Now())
}

// CreateCustomGoal appends a new enabled goal and makes it the active
// selection.
func (s *GoalService) CreateCustomGoal(ctx context.Context, name string, targetVolumes int, startDate, endDate string) (domain.CustomGoal, error) {
	now := s.clock.Now()
	goal := domain.CustomGoal{
		ID:            s.idGen.New(),
		Name:          name,
		TargetVolumes: targetVolumes,
		StartDate:     startDate,
		EndDate:       endDate,
		Enabled:       true,
		CreatedAt:     now,
	}
	if err := goal.Validate(); err != nil {
		return domain.CustomGoal{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	data, err := s.dataStore.Load(ctx)
	if err != nil {
		return domain.CustomGoal{}, err
	}
	data.CustomGoals = append(append([]domain.CustomGoal{}, data.CustomGoals...), goal)
	data.ActiveSelection = domain.Selection{GoalType: domain.GoalTypeCustom, CustomID: goal.ID}
	if err := s.dataStore.Save(ctx, data, now); err != nil {
		return domain.CustomGoal{}, err
	}
	return goal, nil
}

// UpdateCustomGoal replaces the goal with the same id; unknown ids are a
// no-op.
func (s *GoalService) UpdateCustomGoal(ctx context.Context, goal domain.CustomGoal) error {
	if err := goal.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	data, err := s.dataStore.Load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	goals := make([]domain.CustomGoal, 0, len(data.CustomGoals))
	for _, existing := range data.CustomGoals {
		if existing.ID == goal.ID {
			goal.CreatedAt = existing.CreatedAt
			goals = append(goals, goal)
			replaced = true
			continue
		}
		goals = append(goals, existing)
	}
	if !replaced {
		return nil
	}
	data.CustomGoals = goals
	return s.dataStore.Save(ctx, data, s.clock.Now())
}

// RemoveCustomGoal deletes by id. When the removed goal was the active
// selection, the selection falls back to the current year.
func (s *GoalService) RemoveCustomGoal(ctx context.Context, goalID string) error {
	data, err := s.dataStore.Load(ctx)
	if err != nil {
		return err
	}
	goals := make([]domain.CustomGoal, 0, len(data.CustomGoals))
	removed := false
	for _, goal := range data.CustomGoals {
		if goal.ID == goalID {
			removed = true
			continue
		}
		goals = append(goals, goal)
	}
	if !removed {
		return nil
	}
	data.CustomGoals = goals
	now := s.clock.Now()
	if data.ActiveSelection.GoalType == domain.GoalTypeCustom && data.ActiveSelection.CustomID == goalID {
		data.ActiveSelection = domain.Selection{
			GoalType:  domain.GoalTypeYear,
			PeriodKey: domain.CurrentPeriodKey(domain.GoalTypeYear, now),
		}
	}
	return s.dataStore.Save(ctx, data, now)
}

func (s *GoalService) SetAnnualGoal(ctx context.Context, year, targetVolumes int) error {
	if year <= 0 || targetVolumes <= 0 {
		return fmt.Errorf("%w: year and target volumes must be positive", apperrors.ErrInvalidInput)
	}
	settings, err := s.settingsStore.Load(ctx)
	if err != nil {
		return err
	}
	goals := make([]domain.AnnualGoal, 0, len(settings.AnnualGoals)+1)
	updated := false
	for _, goal := range settings.AnnualGoals {
		if goal.Year == year {
			goal.TargetVolumes = targetVolumes
			updated = true
		}
		goals = append(goals, goal)
	}
	if !updated {
		goals = append(goals, domain.AnnualGoal{Year: year, TargetVolumes: targetVolumes})
	}
	settings.AnnualGoals = goals
	return s.settingsStore.Save(ctx, settings, s.clock.Now())
}

func (s *GoalService) SetVolumeDeadline(ctx context.Context, volumeID, date string) error {
	if volumeID == "" {
		return fmt.Errorf("%w: volume id is required", apperrors.ErrInvalidInput)
	}
	if _, ok := domain.ParseLocalDate(date, time.UTC); !ok {
		return fmt.Errorf("%w: deadline must be YYYY-MM-DD", apperrors.ErrInvalidInput)
	}
	settings, err := s.settingsStore.Load(ctx)
	if err != nil {
		return err
	}
	deadlines := make(map[string]string, len(settings.VolumeDeadlines)+1)
	for k, v := range settings.VolumeDeadlines {
		deadlines[k] = v
	}
	deadlines[volumeID] = date
	settings.VolumeDeadlines = deadlines
	return s.settingsStore.Save(ctx, settings, s.clock.Now())
}

func (s *GoalService) RemoveVolumeDeadline(ctx context.Context, volumeID string) error {
	settings, err := s.settingsStore.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := settings.VolumeDeadlines[volumeID]; !ok {
		return nil
	}
	deadlines := make(map[string]string, len(settings.VolumeDeadlines))
	for k, v := range settings.VolumeDeadlines {
		if k == volumeID {
			continue
		}
		deadlines[k] = v
	}
	settings.VolumeDeadlines = deadlines
	return s.settingsStore.Save(ctx, settings, s.clock.Now())
}
