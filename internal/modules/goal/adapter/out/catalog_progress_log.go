package out

import (
	"context"
	"time"

	catalogin "tsundoku/internal/modules/catalog/port/in"
	"tsundoku/internal/modules/goal/domain"
	goalout "tsundoku/internal/modules/goal/port/out"
)

// CatalogProgressLog exposes the volume catalog as the goal engine's
// reading log: per-volume page state in, completed_at patches out.
type CatalogProgressLog struct {
	catalog catalogin.Usecase
}

func NewCatalogProgressLog(catalog catalogin.Usecase) goalout.ProgressLog {
	return &CatalogProgressLog{catalog: catalog}
}

func (a *CatalogProgressLog) ListVolumeStates(ctx context.Context) ([]domain.VolumeState, error) {
	volumes, err := a.catalog.ListVolumes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.VolumeState, 0, len(volumes))
	for _, v := range volumes {
		out = append(out, domain.VolumeState{
			ID:                 v.ID,
			Title:              v.Title,
			PageCount:          v.PageCount,
			CurrentPage:        v.CurrentPage,
			Completed:          v.Completed,
			CompletedAt:        v.CompletedAt,
			LastProgressUpdate: v.LastProgressUpdate,
		})
	}
	return out, nil
}

func (a *CatalogProgressLog) PatchCompletion(ctx context.Context, volumeID string, completedAt time.Time) error {
	return a.catalog.PatchCompletion(ctx, volumeID, completedAt)
}
