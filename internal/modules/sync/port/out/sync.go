package out

import (
	"context"

	"tsundoku/internal/modules/sync/domain"
)

// PayloadStore reads and writes sync payload files.
type PayloadStore interface {
	Read(ctx context.Context, path string) (domain.Payload, error)
	Write(ctx context.Context, path string, payload domain.Payload) error
}
