// Package chapters extracts timestamped chapter markers from video descriptions.
package chapters

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// Marker is an extracted (elapsed, label) pair.
type Marker struct {
	ElapsedSeconds int
	Label          string
}

// Extract returns the markers of text in source order.
// Markers whose time token does not have two or three numeric components,
// or whose label is blank after trimming, are skipped. Extract never fails.
func Extract(text string) []Marker {
	var markers []Marker
	sc := NewScanner(text)
	for sc.Next() {
		m := sc.Match()
		elapsed, ok := ParseElapsed(m.Token)
		if !ok {
			continue
		}
		label := strings.TrimSpace(m.Label)
		if label == "" {
			continue
		}
		markers = append(markers, Marker{ElapsedSeconds: elapsed, Label: label})
	}
	return markers
}

// ParseElapsed converts "m:s" or "h:m:s" into seconds.
func ParseElapsed(token string) (int, bool) {
	fields := strings.Split(token, ":")
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return 0, false
		}
		nums[i] = n
	}

	switch len(nums) {
	case 2:
		return nums[0]*60 + nums[1], true
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2], true
	default:
		return 0, false
	}
}

// Extractor turns a video into its chapters.
type Extractor struct{}

// New creates a chapter extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the processor name.
func (e *Extractor) Name() string {
	return "chapters"
}

// Process extracts the chapters of a video's description.
func (e *Extractor) Process(video *domain.Video) []domain.Chapter {
	markers := Extract(video.Description)
	if len(markers) == 0 {
		return nil
	}
	out := make([]domain.Chapter, len(markers))
	for i, m := range markers {
		out[i] = domain.Chapter{
			VideoID:        video.ID,
			ElapsedSeconds: m.ElapsedSeconds,
			Label:          m.Label,
		}
	}
	return out
}
