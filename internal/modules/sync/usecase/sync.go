package usecase

import (
	"context"

	"tsundoku/internal/modules/sync/dto"
	syncin "tsundoku/internal/modules/sync/port/in"
	syncout "tsundoku/internal/modules/sync/port/out"
	"tsundoku/internal/modules/sync/service"
)

type Interactor struct {
	svc   *service.SyncService
	files syncout.PayloadStore
}

func NewInteractor(svc *service.SyncService, files syncout.PayloadStore) syncin.Usecase {
	return &Interactor{svc: svc, files: files}
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error) {
	payload, err := i.files.Read(ctx, input.Path)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	result, err := i.svc.Import(ctx, payload)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{
		SettingsApplied:    result.SettingsApplied,
		GoalsDataApplied:   result.GoalsDataApplied,
		SnapshotsApplied:   result.SnapshotsApplied,
		CompletionsMerged:  result.CompletionsMerged,
		SectionsConsidered: result.Sections,
	}, nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) error {
	payload, err := i.svc.Export(ctx)
	if err != nil {
		return err
	}
	return i.files.Write(ctx, input.Path, payload)
}
