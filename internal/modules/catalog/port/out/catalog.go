package out

import (
	"context"

	"tsundoku/internal/modules/catalog/domain"
)

type VolumeStore interface {
	Save(ctx context.Context, document domain.VolumeDocument) (string, error)
	FindByID(ctx context.Context, id string) (domain.VolumeDocument, error)
	List(ctx context.Context) ([]domain.VolumeDocument, error)
}

type VolumeProjector interface {
	Reset(ctx context.Context) error
	UpsertVolume(ctx context.Context, volume domain.Volume) error
}

// PageCounter extracts a page count from a volume's backing file.
type PageCounter interface {
	CountPages(ctx context.Context, path string) (int, error)
}
