package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultConcurrency is the number of videos indexed in parallel.
const DefaultConcurrency = 4

// DefaultRunHistory is how many runs are kept in the run store.
const DefaultRunHistory = 100

// IngestService fetches videos, extracts their chapters and upserts both indexes.
// A video is upserted, and confirmed present, before any of its chapters.
type IngestService struct {
	fetchers    map[domain.RunSource]*Fetcher
	extractor   driven.ChapterExtractor
	videos      driven.VideoIndex
	chapters    driven.ChapterIndex
	runs        driven.RunStore
	concurrency int
	history     int
	now         func() time.Time

	// Status tracking
	mu     sync.RWMutex
	active map[string]*driving.IngestStatus
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithConcurrency sets how many videos are indexed at once.
func WithConcurrency(n int) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithSource registers a fetcher for a non-default source such as a dump.
func WithSource(source domain.RunSource, f *Fetcher) IngestOption {
	return func(s *IngestService) {
		if f != nil {
			s.fetchers[source] = f
		}
	}
}

// WithRunHistory sets how many runs the run store keeps.
func WithRunHistory(keep int) IngestOption {
	return func(s *IngestService) { s.history = keep }
}

// NewIngestService creates an ingest service. fetcher serves domain.SourceProvider
// and may be nil when only dumps are ingested. runs is optional.
func NewIngestService(
	fetcher *Fetcher,
	extractor driven.ChapterExtractor,
	videos driven.VideoIndex,
	chapters driven.ChapterIndex,
	runs driven.RunStore,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		fetchers:    make(map[domain.RunSource]*Fetcher),
		extractor:   extractor,
		videos:      videos,
		chapters:    chapters,
		runs:        runs,
		concurrency: DefaultConcurrency,
		history:     DefaultRunHistory,
		now:         time.Now,
		active:      make(map[string]*driving.IngestStatus),
	}
	if fetcher != nil {
		s.fetchers[domain.SourceProvider] = fetcher
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch walks the selected source without indexing.
func (s *IngestService) Fetch(ctx context.Context, opts driving.IngestOptions) ([]domain.Video, error) {
	source := opts.Source
	if source == "" {
		source = domain.SourceProvider
	}
	f, ok := s.fetchers[source]
	if !ok {
		return nil, fmt.Errorf("%w: no fetcher for source %q", domain.ErrInvalidInput, source)
	}

	logger.Section("Fetch")
	logger.Info("Fetching channel %s from %s", opts.ChannelID, source)
	if opts.Recent > 0 {
		return f.FetchRecent(ctx, opts.ChannelID, opts.Recent)
	}
	return f.FetchAll(ctx, opts.ChannelID)
}

// Ingest fetches and indexes in one run. Only one run per channel may be active.
func (s *IngestService) Ingest(ctx context.Context, opts driving.IngestOptions) (*domain.IngestRun, error) {
	if err := s.begin(opts.ChannelID); err != nil {
		return nil, err
	}
	defer s.end(opts.ChannelID)

	run := s.newRun(opts)
	s.saveRun(ctx, run)

	videos, err := s.Fetch(ctx, opts)
	if err != nil {
		s.finish(ctx, run, err)
		return run, fmt.Errorf("fetch: %w", err)
	}
	run.VideosFetched = len(videos)

	err = s.index(ctx, run, videos)
	return run, err
}

// Index upserts already fetched videos and their chapters as one run.
func (s *IngestService) Index(ctx context.Context, opts driving.IngestOptions, videos []domain.Video) (*domain.IngestRun, error) {
	if err := s.begin(opts.ChannelID); err != nil {
		return nil, err
	}
	defer s.end(opts.ChannelID)

	run := s.newRun(opts)
	run.VideosFetched = len(videos)
	s.saveRun(ctx, run)

	err := s.index(ctx, run, videos)
	return run, err
}

func (s *IngestService) index(ctx context.Context, run *domain.IngestRun, videos []domain.Video) error {
	if s.videos == nil || s.chapters == nil {
		err := fmt.Errorf("%w: indexes not configured", domain.ErrServiceUnavailable)
		s.finish(ctx, run, err)
		return err
	}

	logger.Section("Index")
	logger.Info("Indexing %d videos with concurrency %d", len(videos), s.concurrency)

	var (
		mu      sync.Mutex
		errList []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range videos {
		video := &videos[i]
		g.Go(func() error {
			n, err := s.indexVideo(gctx, video)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				logger.Warn("Video %s: %v", video.ID, err)
				run.Failures++
				errList = append(errList, fmt.Errorf("video %s: %w", video.ID, err))
			} else {
				run.VideosIndexed++
				run.ChaptersIndexed += n
			}
			s.progress(run.ChannelID, run.Failures)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		errList = append(errList, err)
	}

	err := errors.Join(errList...)
	s.finish(ctx, run, err)
	logger.Info("Run %s: %d videos, %d chapters, %d failures",
		run.ID, run.VideosIndexed, run.ChaptersIndexed, run.Failures)
	return err
}

// indexVideo upserts one video then its chapters and returns the chapter count.
func (s *IngestService) indexVideo(ctx context.Context, video *domain.Video) (int, error) {
	if err := s.videos.Upsert(ctx, []domain.VideoDocument{domain.NewVideoDocument(video)}); err != nil {
		return 0, fmt.Errorf("upsert video: %w", err)
	}

	exists, err := s.videos.Exists(ctx, video.ID)
	if err != nil {
		return 0, fmt.Errorf("check video: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("video not visible after upsert: %w", domain.ErrNotFound)
	}

	chapters := s.extractor.Process(video)
	if len(chapters) == 0 {
		logger.Debug("Video %s has no chapters", video.ID)
		return 0, nil
	}

	docs := make([]domain.ChapterDocument, len(chapters))
	for i, c := range chapters {
		docs[i] = domain.NewChapterDocument(c, video)
	}
	if err := s.chapters.Upsert(ctx, docs); err != nil {
		return 0, fmt.Errorf("upsert chapters: %w", err)
	}
	logger.Debug("Video %s: %d chapters", video.ID, len(docs))
	return len(docs), nil
}

// Status returns progress for a channel. Idle channels report Running false.
func (s *IngestService) Status(_ context.Context, channelID string) (*driving.IngestStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.active[channelID]; ok {
		copied := *status
		return &copied, nil
	}
	return &driving.IngestStatus{ChannelID: channelID}, nil
}

// Runs lists recorded runs, newest first. Without a run store it returns nothing.
func (s *IngestService) Runs(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.List(ctx, limit)
}

func (s *IngestService) newRun(opts driving.IngestOptions) *domain.IngestRun {
	source := opts.Source
	if source == "" {
		source = domain.SourceProvider
	}
	return &domain.IngestRun{
		ID:        uuid.New().String(),
		ChannelID: opts.ChannelID,
		Source:    source,
		Status:    domain.RunRunning,
		StartedAt: s.now(),
	}
}

func (s *IngestService) finish(ctx context.Context, run *domain.IngestRun, err error) {
	run.EndedAt = s.now()
	run.Status = domain.RunSucceeded
	if err != nil {
		run.Status = domain.RunFailed
		run.Error = err.Error()
	}
	s.saveRun(context.WithoutCancel(ctx), run)

	if s.runs != nil && s.history > 0 {
		if err := s.runs.Prune(context.WithoutCancel(ctx), s.history); err != nil {
			logger.Warn("Failed to prune run history: %v", err)
		}
	}
}

func (s *IngestService) saveRun(ctx context.Context, run *domain.IngestRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Save(ctx, run); err != nil {
		logger.Warn("Failed to record run %s: %v", run.ID, err)
	}
}

func (s *IngestService) begin(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.active[channelID]; ok && status.Running {
		return fmt.Errorf("channel %s: %w", channelID, domain.ErrIngestInProgress)
	}
	s.active[channelID] = &driving.IngestStatus{ChannelID: channelID, Running: true}
	return nil
}

func (s *IngestService) progress(channelID string, failures int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status, ok := s.active[channelID]; ok {
		status.VideosProcessed++
		status.ErrorCount = failures
	}
}

func (s *IngestService) end(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, channelID)
}
