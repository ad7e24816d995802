package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tsundoku/internal/modules/catalog/domain"
	catalogout "tsundoku/internal/modules/catalog/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteVolumeProjector maintains a queryable read model of the vault.
type SQLiteVolumeProjector struct {
	db *sql.DB
}

func NewSQLiteVolumeProjector(dbPath string) (catalogout.VolumeProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteVolumeProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteVolumeProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS volumes (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  series TEXT,
  slug TEXT NOT NULL,
  file_path TEXT,
  page_count INTEGER NOT NULL,
  current_page INTEGER NOT NULL,
  completed INTEGER NOT NULL,
  completed_at TEXT,
  last_progress_update TEXT,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create volumes table: %w", err)
	}
	return nil
}

func (s *SQLiteVolumeProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM volumes`); err != nil {
		return fmt.Errorf("reset volumes: %w", err)
	}
	return nil
}

func (s *SQLiteVolumeProjector) UpsertVolume(ctx context.Context, volume domain.Volume) error {
	const stmt = `
INSERT INTO volumes (id, title, series, slug, file_path, page_count, current_page, completed, completed_at, last_progress_update, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  series=excluded.series,
  slug=excluded.slug,
  file_path=excluded.file_path,
  page_count=excluded.page_count,
  current_page=excluded.current_page,
  completed=excluded.completed,
  completed_at=excluded.completed_at,
  last_progress_update=excluded.last_progress_update,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		volume.ID,
		volume.Title,
		volume.Series,
		volume.Slug,
		volume.FilePath,
		volume.PageCount,
		volume.CurrentPage,
		boolToInt(volume.Completed),
		timePtrString(volume.CompletedAt),
		timePtrString(volume.LastProgressUpdate),
		volume.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert volume: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func timePtrString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
