package in

import (
	"context"
	"time"

	"tsundoku/internal/modules/catalog/dto"
)

type Usecase interface {
	AddVolume(ctx context.Context, input dto.AddVolumeInput) (dto.VolumeOutput, error)
	UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.VolumeOutput, error)
	MarkCompleted(ctx context.Context, id string) (dto.VolumeOutput, error)
	PatchCompletion(ctx context.Context, id string, completedAt time.Time) error
	ListVolumes(ctx context.Context) ([]dto.VolumeOutput, error)
	GetVolume(ctx context.Context, id string) (dto.VolumeOutput, error)
	Reindex(ctx context.Context) error
}
