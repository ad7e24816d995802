package service

import (
	"context"
	"time"

	goalin "tsundoku/internal/modules/goal/port/in"
	"tsundoku/internal/modules/sync/domain"
)

// SyncService reconciles an externally delivered payload with local state.
// Whole datasets merge last-write-wins on their timestamps; completion
// timestamps merge per-key earliest-wins.
type SyncService struct {
	goals goalin.Usecase
}

func NewSyncService(goals goalin.Usecase) *SyncService {
	return &SyncService{goals: goals}
}

type ImportResult struct {
	SettingsApplied   bool
	GoalsDataApplied  bool
	SnapshotsApplied  bool
	CompletionsMerged int
	Sections          int
}

func (s *SyncService) Import(ctx context.Context, payload domain.Payload) (ImportResult, error) {
	result := ImportResult{}
	state, err := s.goals.ExportState(ctx)
	if err != nil {
		return result, err
	}

	if payload.Settings != nil {
		result.Sections++
		if payload.Settings.UpdatedAt.After(state.Settings.UpdatedAt) {
			if err := s.goals.MergeSettings(ctx, payload.Settings.Data, payload.Settings.UpdatedAt); err != nil {
				return result, err
			}
			result.SettingsApplied = true
		}
	}
	if payload.GoalsData != nil {
		result.Sections++
		if payload.GoalsData.UpdatedAt.After(state.GoalsData.UpdatedAt) {
			if err := s.goals.MergeGoalsData(ctx, payload.GoalsData.Data, payload.GoalsData.UpdatedAt); err != nil {
				return result, err
			}
			result.GoalsDataApplied = true
		}
	}
	if payload.Snapshots != nil {
		result.Sections++
		if payload.Snapshots.UpdatedAt.After(state.Snapshots.UpdatedAt) {
			if err := s.goals.MergeSnapshots(ctx, payload.Snapshots.Data, payload.Snapshots.UpdatedAt); err != nil {
				return result, err
			}
			result.SnapshotsApplied = true
		}
	}
	if payload.Completions != nil {
		result.Sections++
		merged, err := s.goals.MergeCompletions(ctx, payload.Completions.Data, payload.Completions.UpdatedAt)
		if err != nil {
			return result, err
		}
		result.CompletionsMerged = merged
	}
	return result, nil
}

// Export builds a full payload of local state and markers.
func (s *SyncService) Export(ctx context.Context) (domain.Payload, error) {
	state, err := s.goals.ExportState(ctx)
	if err != nil {
		return domain.Payload{}, err
	}
	completions := make(map[string]string, len(state.Completions))
	for id, at := range state.Completions {
		completions[id] = at.Format(time.RFC3339)
	}
	return domain.Payload{
		Settings:  &domain.Section{Data: state.Settings.Raw, UpdatedAt: state.Settings.UpdatedAt},
		GoalsData: &domain.Section{Data: state.GoalsData.Raw, UpdatedAt: state.GoalsData.UpdatedAt},
		Snapshots: &domain.Section{Data: state.Snapshots.Raw, UpdatedAt: state.Snapshots.UpdatedAt},
		Completions: &domain.CompletionsSection{
			Data:      completions,
			UpdatedAt: state.CompletionsUpdatedAt,
		},
	}, nil
}
