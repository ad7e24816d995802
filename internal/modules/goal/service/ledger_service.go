package service

import (
	"context"
	"time"

	"tsundoku/internal/modules/goal/domain"
	goalout "tsundoku/internal/modules/goal/port/out"
	"tsundoku/internal/platform/clock"
)

// LedgerService derives the completion ledger from the reading log and
// backfills newly completed volumes into it.
type LedgerService struct {
	clock       clock.Clock
	progressLog goalout.ProgressLog
	marker      goalout.CompletionMarker
}

func NewLedgerService(clk clock.Clock, progressLog goalout.ProgressLog, marker goalout.CompletionMarker) *LedgerService {
	return &LedgerService{clock: clk, progressLog: progressLog, marker: marker}
}

// Load returns the current volume states and the ledger derived from them.
func (s *LedgerService) Load(ctx context.Context) ([]domain.VolumeState, domain.Ledger, error) {
	volumes, err := s.progressLog.ListVolumeStates(ctx)
	if err != nil {
		return nil, nil, err
	}
	return volumes, domain.LedgerFromVolumes(volumes), nil
}

// Backfill discovers newly completed volumes and records their completion
// timestamps. Idempotent: a second run over unchanged inputs writes
// nothing. New timestamps are written back into the reading log
// best-effort; a failed back-write never fails the backfill.
func (s *LedgerService) Backfill(ctx context.Context) ([]domain.VolumeState, domain.Ledger, int, error) {
	volumes, ledger, err := s.Load(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	now := s.clock.Now()
	merged, added := domain.BackfillLedger(ledger, volumes, now)
	if len(added) == 0 {
		return volumes, merged, 0, nil
	}
	s.writeBack(ctx, added)
	_ = s.marker.Set(ctx, now)
	return volumes, merged, len(added), nil
}

// ApplyMerge folds remotely observed completion timestamps into the
// ledger, earliest-wins, back-writes adopted entries, and adopts the
// remote marker.
func (s *LedgerService) ApplyMerge(ctx context.Context, incoming map[string]string, remoteUpdatedAt time.Time) (int, error) {
	_, ledger, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	_, changed := domain.MergeCompletions(ledger, incoming)
	if len(changed) == 0 {
		return 0, nil
	}
	s.writeBack(ctx, changed)
	_ = s.marker.Set(ctx, remoteUpdatedAt)
	return len(changed), nil
}

func (s *LedgerService) writeBack(ctx context.Context, entries map[string]time.Time) {
	for volumeID, at := range entries {
		// Best-effort: the in-memory ledger stays correct even when the
		// log rejects the patch.
		_ = s.progressLog.PatchCompletion(ctx, volumeID, at)
	}
}
