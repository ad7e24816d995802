package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tsundoku/internal/modules/catalog/domain"
	catalogout "tsundoku/internal/modules/catalog/port/out"
	apperrors "tsundoku/internal/platform/errors"
	"tsundoku/internal/platform/markdown"
)

// VaultVolumeStore keeps one markdown note per volume under
// <vault>/volumes/, with the reading state in YAML frontmatter.
type VaultVolumeStore struct {
	vaultPath string
}

func NewVaultVolumeStore(vaultPath string) catalogout.VolumeStore {
	return &VaultVolumeStore{vaultPath: vaultPath}
}

func (s *VaultVolumeStore) Save(_ context.Context, document domain.VolumeDocument) (string, error) {
	volume := document.Volume
	notePath := filepath.Join(s.vaultPath, "volumes", volume.Slug+".md")
	if err := os.MkdirAll(filepath.Dir(notePath), 0o755); err != nil {
		return "", fmt.Errorf("create volumes directory: %w", err)
	}

	body := document.Body
	if existing, err := os.ReadFile(notePath); err == nil {
		_, existingBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr == nil && strings.TrimSpace(body) == "" {
			body = existingBody
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "## Notes\n"
	}

	rendered, err := markdown.RenderFrontmatter(toFrontmatter(volume), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write volume note: %w", err)
	}
	return notePath, nil
}

func (s *VaultVolumeStore) FindByID(ctx context.Context, id string) (domain.VolumeDocument, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return domain.VolumeDocument{}, err
	}
	for _, doc := range docs {
		if doc.Volume.ID == id {
			return doc, nil
		}
	}
	return domain.VolumeDocument{}, apperrors.ErrNotFound
}

func (s *VaultVolumeStore) List(_ context.Context) ([]domain.VolumeDocument, error) {
	glob := filepath.Join(s.vaultPath, "volumes", "*.md")
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob volume notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.VolumeDocument, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta, body, splitErr := markdown.SplitFrontmatter(string(content))
		if splitErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, splitErr)
		}
		volume, convErr := fromFrontmatter(meta, path)
		if convErr != nil {
			return nil, fmt.Errorf("decode volume %s: %w", path, convErr)
		}
		out = append(out, domain.VolumeDocument{Volume: volume, Body: body})
	}
	return out, nil
}

func toFrontmatter(volume domain.Volume) map[string]any {
	meta := map[string]any{
		"schema_version": domain.SchemaVersion,
		"id":             volume.ID,
		"title":          volume.Title,
		"series":         volume.Series,
		"file_path":      volume.FilePath,
		"page_count":     volume.PageCount,
		"current_page":   volume.CurrentPage,
		"completed":      volume.Completed,
		"added_at":       volume.AddedAt.Format(time.RFC3339),
		"updated_at":     volume.UpdatedAt.Format(time.RFC3339),
	}
	if volume.CompletedAt != nil {
		meta["completed_at"] = volume.CompletedAt.Format(time.RFC3339)
	}
	if volume.LastProgressUpdate != nil {
		meta["last_progress_update"] = volume.LastProgressUpdate.Format(time.RFC3339)
	}
	return meta
}

func fromFrontmatter(meta map[string]any, notePath string) (domain.Volume, error) {
	volume := domain.Volume{
		ID:          asString(meta["id"]),
		Title:       asString(meta["title"]),
		Series:      asString(meta["series"]),
		FilePath:    asString(meta["file_path"]),
		PageCount:   asInt(meta["page_count"]),
		CurrentPage: asInt(meta["current_page"]),
		Completed:   asBool(meta["completed"]),
	}
	volume.Slug = strings.TrimSuffix(filepath.Base(notePath), filepath.Ext(notePath))
	volume.AddedAt, _ = time.Parse(time.RFC3339, asString(meta["added_at"]))
	volume.UpdatedAt, _ = time.Parse(time.RFC3339, asString(meta["updated_at"]))
	volume.CompletedAt = asTimePtr(meta["completed_at"])
	volume.LastProgressUpdate = asTimePtr(meta["last_progress_update"])
	if err := volume.Validate(); err != nil {
		return domain.Volume{}, err
	}
	return volume, nil
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		var out int
		_, _ = fmt.Sscanf(x, "%d", &out)
		return out
	default:
		return 0
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asTimePtr(v any) *time.Time {
	raw := asString(v)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
