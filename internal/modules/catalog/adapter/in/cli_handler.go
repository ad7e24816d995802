package in

import (
	"context"

	"tsundoku/internal/modules/catalog/dto"
	catalogin "tsundoku/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddVolume(ctx context.Context, title, series, filePath string, pageCount int) (dto.VolumeOutput, error) {
	return h.usecase.AddVolume(ctx, dto.AddVolumeInput{
		Title:     title,
		Series:    series,
		FilePath:  filePath,
		PageCount: pageCount,
	})
}

func (h CLIHandler) UpdateProgress(ctx context.Context, volumeID string, currentPage int) (dto.VolumeOutput, error) {
	return h.usecase.UpdateProgress(ctx, dto.UpdateProgressInput{VolumeID: volumeID, CurrentPage: currentPage})
}

func (h CLIHandler) MarkCompleted(ctx context.Context, volumeID string) (dto.VolumeOutput, error) {
	return h.usecase.MarkCompleted(ctx, volumeID)
}

func (h CLIHandler) ListVolumes(ctx context.Context) ([]dto.VolumeOutput, error) {
	return h.usecase.ListVolumes(ctx)
}

func (h CLIHandler) GetVolume(ctx context.Context, volumeID string) (dto.VolumeOutput, error) {
	return h.usecase.GetVolume(ctx, volumeID)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
