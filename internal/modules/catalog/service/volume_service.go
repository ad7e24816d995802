package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tsundoku/internal/modules/catalog/domain"
	catalogout "tsundoku/internal/modules/catalog/port/out"
	"tsundoku/internal/platform/clock"
	"tsundoku/internal/platform/id"
	"tsundoku/internal/platform/slug"
)

type VolumeService struct {
	clock       clock.Clock
	idGen       id.Generator
	store       catalogout.VolumeStore
	projector   catalogout.VolumeProjector
	pageCounter catalogout.PageCounter
}

func NewVolumeService(clk clock.Clock, idGen id.Generator, store catalogout.VolumeStore, projector catalogout.VolumeProjector, pageCounter catalogout.PageCounter) *VolumeService {
	return &VolumeService{clock: clk, idGen: idGen, store: store, projector: projector, pageCounter: pageCounter}
}

// AddVolume registers a volume. When a PDF path is given without an
// explicit page count, the count is read from the file; a failed read
// degrades to an unknown page count.
func (s *VolumeService) AddVolume(ctx context.Context, title, series, filePath string, pageCount int) (domain.Volume, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Volume{}, fmt.Errorf("title is required")
	}
	if pageCount < 0 {
		return domain.Volume{}, fmt.Errorf("page count must not be negative")
	}
	if pageCount == 0 && strings.EqualFold(filepath.Ext(filePath), ".pdf") && s.pageCounter != nil {
		if counted, err := s.pageCounter.CountPages(ctx, filePath); err == nil {
			pageCount = counted
		}
	}
	now := s.clock.Now()
	volume := domain.Volume{
		ID:        s.idGen.New(),
		Title:     title,
		Series:    strings.TrimSpace(series),
		Slug:      slug.Make(title),
		FilePath:  filePath,
		PageCount: pageCount,
		AddedAt:   now,
		UpdatedAt: now,
	}
	if err := volume.Validate(); err != nil {
		return domain.Volume{}, err
	}
	if err := s.persist(ctx, domain.VolumeDocument{Volume: volume}); err != nil {
		return domain.Volume{}, err
	}
	return volume, nil
}

// UpdateProgress moves the page position and stamps the progress-update
// time. Reaching a known total marks the volume completed.
func (s *VolumeService) UpdateProgress(ctx context.Context, volumeID string, currentPage int) (domain.Volume, error) {
	doc, err := s.store.FindByID(ctx, volumeID)
	if err != nil {
		return domain.Volume{}, err
	}
	if currentPage < 0 {
		currentPage = 0
	}
	if doc.Volume.PageCount > 0 && currentPage > doc.Volume.PageCount {
		currentPage = doc.Volume.PageCount
	}
	now := s.clock.Now()
	doc.Volume.CurrentPage = currentPage
	doc.Volume.LastProgressUpdate = &now
	doc.Volume.UpdatedAt = now
	if doc.Volume.PageCount > 0 && currentPage >= doc.Volume.PageCount {
		doc.Volume.Completed = true
	}
	if err := s.persist(ctx, doc); err != nil {
		return domain.Volume{}, err
	}
	return doc.Volume, nil
}

func (s *VolumeService) MarkCompleted(ctx context.Context, volumeID string) (domain.Volume, error) {
	doc, err := s.store.FindByID(ctx, volumeID)
	if err != nil {
		return domain.Volume{}, err
	}
	now := s.clock.Now()
	doc.Volume.Completed = true
	doc.Volume.LastProgressUpdate = &now
	doc.Volume.UpdatedAt = now
	if err := s.persist(ctx, doc); err != nil {
		return domain.Volume{}, err
	}
	return doc.Volume, nil
}

// PatchCompletion records the goal engine's completion timestamp in the
// volume's own record. Existing timestamps are overwritten; the engine
// decides which timestamp wins.
func (s *VolumeService) PatchCompletion(ctx context.Context, volumeID string, completedAt time.Time) error {
	doc, err := s.store.FindByID(ctx, volumeID)
	if err != nil {
		return err
	}
	doc.Volume.Completed = true
	doc.Volume.CompletedAt = &completedAt
	doc.Volume.UpdatedAt = s.clock.Now()
	return s.persist(ctx, doc)
}

func (s *VolumeService) ListVolumes(ctx context.Context) ([]domain.Volume, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Volume, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Volume)
	}
	return out, nil
}

func (s *VolumeService) GetVolume(ctx context.Context, volumeID string) (domain.Volume, error) {
	doc, err := s.store.FindByID(ctx, volumeID)
	if err != nil {
		return domain.Volume{}, err
	}
	return doc.Volume, nil
}

func (s *VolumeService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	docs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.projector.UpsertVolume(ctx, doc.Volume); err != nil {
			return err
		}
	}
	return nil
}

func (s *VolumeService) persist(ctx context.Context, doc domain.VolumeDocument) error {
	if _, err := s.store.Save(ctx, doc); err != nil {
		return err
	}
	return s.projector.UpsertVolume(ctx, doc.Volume)
}
