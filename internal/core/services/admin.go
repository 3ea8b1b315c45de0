package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Ensure IndexAdminService implements the interface.
var _ driving.IndexAdminService = (*IndexAdminService)(nil)

// IndexAdminService maintains the video and chapter indexes.
type IndexAdminService struct {
	setup    driven.IndexSetup
	videos   driven.VideoIndex
	chapters driven.ChapterIndex
}

// NewIndexAdminService creates an admin service. setup may be nil for
// backends that need no provisioning.
func NewIndexAdminService(setup driven.IndexSetup, videos driven.VideoIndex, chapters driven.ChapterIndex) *IndexAdminService {
	return &IndexAdminService{setup: setup, videos: videos, chapters: chapters}
}

// Setup creates the indexes and applies their settings.
func (s *IndexAdminService) Setup(ctx context.Context) error {
	if s.setup == nil {
		logger.Debug("Index backend needs no setup")
		return nil
	}
	if err := s.setup.Setup(ctx); err != nil {
		return fmt.Errorf("setup indexes: %w", err)
	}
	return nil
}

// Chapter returns a chapter document by pid.
func (s *IndexAdminService) Chapter(ctx context.Context, pid string) (*domain.ChapterDocument, error) {
	if pid == "" {
		return nil, fmt.Errorf("%w: pid is required", domain.ErrInvalidInput)
	}
	return s.chapters.Get(ctx, pid)
}

// Video returns a video document by id.
func (s *IndexAdminService) Video(ctx context.Context, id string) (*domain.VideoDocument, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: video id is required", domain.ErrInvalidInput)
	}
	return s.videos.Get(ctx, id)
}

// DeleteChapters removes chapters by pid.
func (s *IndexAdminService) DeleteChapters(ctx context.Context, pids []string) error {
	if len(pids) == 0 {
		return fmt.Errorf("%w: at least one pid is required", domain.ErrInvalidInput)
	}
	return s.chapters.Delete(ctx, pids)
}

// DeleteVideo removes a video and every chapter that belongs to it.
// Chapters go first so no chapter outlives its video.
func (s *IndexAdminService) DeleteVideo(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: video id is required", domain.ErrInvalidInput)
	}
	if err := s.chapters.DeleteByVideo(ctx, id); err != nil {
		return fmt.Errorf("delete chapters of %s: %w", id, err)
	}
	if err := s.videos.Delete(ctx, []string{id}); err != nil {
		return fmt.Errorf("delete video %s: %w", id, err)
	}
	return nil
}

// Clear empties both indexes.
func (s *IndexAdminService) Clear(ctx context.Context) error {
	if err := s.chapters.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear chapters: %w", err)
	}
	if err := s.videos.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear videos: %w", err)
	}
	logger.Info("Cleared video and chapter indexes")
	return nil
}

// Stats counts stored documents.
func (s *IndexAdminService) Stats(ctx context.Context) (*driving.IndexStats, error) {
	videos, err := s.videos.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	chapters, err := s.chapters.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return &driving.IndexStats{Videos: len(videos), Chapters: len(chapters)}, nil
}
