package service

import (
	"strconv"

	"tsundoku/internal/modules/goal/domain"
	"tsundoku/internal/platform/clock"
)

// ProgressService assembles progress reports from loaded state. It holds no
// stores; everything it reads is passed in.
type ProgressService struct {
	clock clock.Clock
}

func NewProgressService(clk clock.Clock) *ProgressService {
	return &ProgressService{clock: clk}
}

// Report resolves the selection's period and computes its progress. An
// unresolvable selection degrades to a zero report labeled "Unknown
// period".
func (s *ProgressService) Report(
	selection domain.Selection,
	data domain.GoalsData,
	settings domain.Settings,
	volumes []domain.VolumeState,
	ledger domain.Ledger,
	snapshots map[string]domain.Snapshot,
) domain.Report {
	now := s.clock.Now()
	loc := now.Location()

	var period domain.Period
	var target int
	var ok bool
	if selection.GoalType == domain.GoalTypeCustom {
		goal, found := data.FindCustomGoal(selection.CustomID)
		if !found {
			return domain.ZeroReport(selection.GoalType)
		}
		period, ok = domain.ResolveCustomPeriod(goal, loc)
		target = goal.TargetVolumes
	} else {
		period, ok = domain.ResolvePeriod(selection.GoalType, selection.PeriodKey, loc)
		if t, found := data.FindTarget(selection.GoalType, selection.PeriodKey); found {
			target = t.TargetVolumes
		} else if selection.GoalType == domain.GoalTypeYear {
			target = s.annualFallback(settings, selection.PeriodKey)
		}
	}
	if !ok {
		return domain.ZeroReport(selection.GoalType)
	}

	var snapshot *domain.Snapshot
	key := domain.SnapshotKey(string(selection.GoalType), period.PeriodKey)
	if snap, exists := snapshots[key]; exists {
		snapshot = &snap
	}

	return domain.ComputeProgress(domain.ProgressInput{
		Period:   period,
		Target:   target,
		Volumes:  volumes,
		Ledger:   ledger,
		Snapshot: snapshot,
		Now:      now,
	})
}

// annualFallback consults the legacy annual goals when no explicit year
// target exists. Years never configured anywhere report a zero target.
func (s *ProgressService) annualFallback(settings domain.Settings, periodKey string) int {
	year, err := strconv.Atoi(periodKey)
	if err != nil {
		return 0
	}
	for _, goal := range settings.AnnualGoals {
		if goal.Year == year {
			return goal.TargetVolumes
		}
	}
	return 0
}
