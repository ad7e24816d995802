package service

import (
	"context"
	"time"

	"tsundoku/internal/modules/goal/domain"
	goalout "tsundoku/internal/modules/goal/port/out"
	"tsundoku/internal/platform/clock"
)

// SnapshotService freezes closed periods. A snapshot key is written at most
// once; finalizing an already-frozen period is a pure no-op.
type SnapshotService struct {
	clock clock.Clock
	store goalout.SnapshotStore
}

func NewSnapshotService(clk clock.Clock, store goalout.SnapshotStore) *SnapshotService {
	return &SnapshotService{clock: clk, store: store}
}

func (s *SnapshotService) Load(ctx context.Context) (map[string]domain.Snapshot, error) {
	return s.store.Load(ctx)
}

// FinalizeGoalSnapshot freezes one period if it has no snapshot yet.
// Returns whether a snapshot was written.
func (s *SnapshotService) FinalizeGoalSnapshot(ctx context.Context, goalType, periodKey string, start, end time.Time, ledger domain.Ledger) (bool, error) {
	snapshots, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	key := domain.SnapshotKey(goalType, periodKey)
	if _, exists := snapshots[key]; exists {
		return false, nil
	}
	now := s.clock.Now()
	next := make(map[string]domain.Snapshot, len(snapshots)+1)
	for k, v := range snapshots {
		next[k] = v
	}
	next[key] = domain.BuildSnapshot(goalType, periodKey, start, end, now, ledger)
	if err := s.store.Save(ctx, next, now); err != nil {
		return false, err
	}
	return true, nil
}

// FinalizeClosed sweeps every non-custom target and every enabled custom
// goal and freezes any whose period has ended without a snapshot. Safe to
// call arbitrarily often.
func (s *SnapshotService) FinalizeClosed(ctx context.Context, data domain.GoalsData, ledger domain.Ledger) (int, error) {
	now := s.clock.Now()
	loc := now.Location()
	frozen := 0
	for _, target := range data.Targets {
		period, ok := domain.ResolvePeriod(target.GoalType, target.PeriodKey, loc)
		if !ok || period.End.After(now) {
			continue
		}
		wrote, err := s.FinalizeGoalSnapshot(ctx, string(target.GoalType), target.PeriodKey, period.Start, period.End, ledger)
		if err != nil {
			return frozen, err
		}
		if wrote {
			frozen++
		}
	}
	for _, goal := range data.CustomGoals {
		if !goal.Enabled {
			continue
		}
		period, ok := domain.ResolveCustomPeriod(goal, loc)
		if !ok || period.End.After(now) {
			continue
		}
		wrote, err := s.FinalizeGoalSnapshot(ctx, string(domain.GoalTypeCustom), goal.ID, period.Start, period.End, ledger)
		if err != nil {
			return frozen, err
		}
		if wrote {
			frozen++
		}
	}
	return frozen, nil
}
