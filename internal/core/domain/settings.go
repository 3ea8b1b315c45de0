package domain

import (
	"fmt"
	"time"
)

// Settings is the application configuration, assembled once at startup
// and passed to each component constructor.
type Settings struct {
	Meilisearch MeilisearchSettings
	YouTube     YouTubeSettings
	Server      ServerSettings
	Ingest      IngestSettings
	Search      SearchSettings
}

// MeilisearchSettings locates the search engine and its two indexes.
type MeilisearchSettings struct {
	URL          string
	APIKey       string
	VideoIndex   string
	ChapterIndex string
}

// YouTubeSettings configures the video provider.
// Either APIKey or ClientSecretPath plus TokenPath must be set to fetch.
type YouTubeSettings struct {
	APIKey            string
	ClientSecretPath  string
	TokenPath         string
	ChannelID         string
	PageSize          int
	RequestsPerSecond float64
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Listen            string
	RequestsPerSecond float64
	Burst             int
}

// IngestSettings configures ingestion runs.
type IngestSettings struct {
	Concurrency int
	Recent      int
	History     int
}

// SearchSettings configures query compilation.
type SearchSettings struct {
	// DayOffsetHours is the fixed UTC offset calendar days are read in.
	DayOffsetHours int
}

// DefaultSettings returns settings suitable for a local Meilisearch.
func DefaultSettings() Settings {
	return Settings{
		Meilisearch: MeilisearchSettings{
			URL:          "http://localhost:7700",
			VideoIndex:   "videos",
			ChapterIndex: "timestamps",
		},
		YouTube: YouTubeSettings{
			PageSize:          50,
			RequestsPerSecond: 5,
		},
		Server: ServerSettings{
			Listen:            ":8080",
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Ingest: IngestSettings{
			Concurrency: 4,
			Recent:      10,
			History:     100,
		},
		Search: SearchSettings{
			DayOffsetHours: 9,
		},
	}
}

// DayZone returns the fixed zone for Search.DayOffsetHours.
func (s SearchSettings) DayZone() *time.Location {
	if s.DayOffsetHours == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", s.DayOffsetHours), s.DayOffsetHours*60*60)
}

// HasCredentials reports whether the provider can be called.
func (y YouTubeSettings) HasCredentials() bool {
	return y.APIKey != "" || (y.ClientSecretPath != "" && y.TokenPath != "")
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	switch {
	case s.Meilisearch.URL == "":
		return fmt.Errorf("%w: meilisearch.url is required", ErrInvalidInput)
	case s.Meilisearch.VideoIndex == "" || s.Meilisearch.ChapterIndex == "":
		return fmt.Errorf("%w: index names are required", ErrInvalidInput)
	case s.Meilisearch.VideoIndex == s.Meilisearch.ChapterIndex:
		return fmt.Errorf("%w: video and chapter index must differ", ErrInvalidInput)
	case s.YouTube.PageSize < 1 || s.YouTube.PageSize > 50:
		return fmt.Errorf("%w: youtube.page_size must be between 1 and 50", ErrInvalidInput)
	case s.YouTube.RequestsPerSecond <= 0 || s.Server.RequestsPerSecond <= 0:
		return fmt.Errorf("%w: requests_per_second must be positive", ErrInvalidInput)
	case s.Server.Burst < 1:
		return fmt.Errorf("%w: server.burst must be positive", ErrInvalidInput)
	case s.Ingest.Concurrency < 1:
		return fmt.Errorf("%w: ingest.concurrency must be positive", ErrInvalidInput)
	case s.Ingest.Recent < 1:
		return fmt.Errorf("%w: ingest.recent must be positive", ErrInvalidInput)
	case s.Search.DayOffsetHours < -12 || s.Search.DayOffsetHours > 14:
		return fmt.Errorf("%w: search.day_offset_hours must be between -12 and 14", ErrInvalidInput)
	}
	return nil
}
