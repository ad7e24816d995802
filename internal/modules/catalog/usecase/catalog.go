package usecase

import (
	"context"
	"time"

	"tsundoku/internal/modules/catalog/domain"
	"tsundoku/internal/modules/catalog/dto"
	catalogin "tsundoku/internal/modules/catalog/port/in"
	"tsundoku/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.VolumeService
}

func NewInteractor(svc *service.VolumeService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) AddVolume(ctx context.Context, input dto.AddVolumeInput) (dto.VolumeOutput, error) {
	volume, err := i.svc.AddVolume(ctx, input.Title, input.Series, input.FilePath, input.PageCount)
	if err != nil {
		return dto.VolumeOutput{}, err
	}
	return toVolumeOutput(volume), nil
}

func (i *Interactor) UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.VolumeOutput, error) {
	volume, err := i.svc.UpdateProgress(ctx, input.VolumeID, input.CurrentPage)
	if err != nil {
		return dto.VolumeOutput{}, err
	}
	return toVolumeOutput(volume), nil
}

func (i *Interactor) MarkCompleted(ctx context.Context, id string) (dto.VolumeOutput, error) {
	volume, err := i.svc.MarkCompleted(ctx, id)
	if err != nil {
		return dto.VolumeOutput{}, err
	}
	return toVolumeOutput(volume), nil
}

func (i *Interactor) PatchCompletion(ctx context.Context, id string, completedAt time.Time) error {
	return i.svc.PatchCompletion(ctx, id, completedAt)
}

func (i *Interactor) ListVolumes(ctx context.Context) ([]dto.VolumeOutput, error) {
	volumes, err := i.svc.ListVolumes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VolumeOutput, 0, len(volumes))
	for _, volume := range volumes {
		out = append(out, toVolumeOutput(volume))
	}
	return out, nil
}

func (i *Interactor) GetVolume(ctx context.Context, id string) (dto.VolumeOutput, error) {
	volume, err := i.svc.GetVolume(ctx, id)
	if err != nil {
		return dto.VolumeOutput{}, err
	}
	return toVolumeOutput(volume), nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toVolumeOutput(volume domain.Volume) dto.VolumeOutput {
	return dto.VolumeOutput{
		ID:                 volume.ID,
		Title:              volume.Title,
		Series:             volume.Series,
		FilePath:           volume.FilePath,
		PageCount:          volume.PageCount,
		CurrentPage:        volume.CurrentPage,
		Completed:          volume.Completed,
		CompletedAt:        volume.CompletedAt,
		LastProgressUpdate: volume.LastProgressUpdate,
	}
}
