package in

import (
	"context"

	"tsundoku/internal/modules/sync/dto"
)

type Usecase interface {
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	Export(ctx context.Context, input dto.ExportInput) error
}
