package driven

import "github.com/custodia-labs/tssearch/internal/core/domain"

// ChapterExtractor derives chapters from a video.
// Extraction is pure and never fails; malformed markers are skipped.
type ChapterExtractor interface {
	// Name returns the extractor identifier for logging.
	Name() string

	// Process returns the video's chapters in description order.
	Process(video *domain.Video) []domain.Chapter
}
