package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, s.Validate())
	assert.Equal(t, 9, s.Search.DayOffsetHours)
	assert.Equal(t, "timestamps", s.Meilisearch.ChapterIndex)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"no url", func(s *Settings) { s.Meilisearch.URL = "" }},
		{"no index", func(s *Settings) { s.Meilisearch.VideoIndex = "" }},
		{"same index", func(s *Settings) { s.Meilisearch.VideoIndex = s.Meilisearch.ChapterIndex }},
		{"page size", func(s *Settings) { s.YouTube.PageSize = 51 }},
		{"provider rate", func(s *Settings) { s.YouTube.RequestsPerSecond = 0 }},
		{"server rate", func(s *Settings) { s.Server.RequestsPerSecond = -1 }},
		{"burst", func(s *Settings) { s.Server.Burst = 0 }},
		{"concurrency", func(s *Settings) { s.Ingest.Concurrency = 0 }},
		{"recent", func(s *Settings) { s.Ingest.Recent = 0 }},
		{"offset", func(s *Settings) { s.Search.DayOffsetHours = 15 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
		})
	}
}

func TestSearchSettings_DayZone(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, SearchSettings{DayOffsetHours: 9}.DayZone())
	assert.Equal(t, int64(1704034800), day.Unix())

	assert.Equal(t, time.UTC, SearchSettings{}.DayZone())

	_, offset := time.Now().In(SearchSettings{DayOffsetHours: -5}.DayZone()).Zone()
	assert.Equal(t, -5*3600, offset)
}

func TestYouTubeSettings_HasCredentials(t *testing.T) {
	assert.False(t, YouTubeSettings{}.HasCredentials())
	assert.True(t, YouTubeSettings{APIKey: "k"}.HasCredentials())
	assert.False(t, YouTubeSettings{ClientSecretPath: "secret.json"}.HasCredentials())
	assert.True(t, YouTubeSettings{ClientSecretPath: "secret.json", TokenPath: "token.json"}.HasCredentials())
}
