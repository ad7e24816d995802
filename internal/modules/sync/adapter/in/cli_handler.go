package in

import (
	"context"

	"tsundoku/internal/modules/sync/dto"
	syncin "tsundoku/internal/modules/sync/port/in"
)

type CLIHandler struct {
	usecase syncin.Usecase
}

func NewCLIHandler(usecase syncin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{Path: path})
}

func (h CLIHandler) Export(ctx context.Context, path string) error {
	return h.usecase.Export(ctx, dto.ExportInput{Path: path})
}
