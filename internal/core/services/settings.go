package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyMeiliURL          = "meilisearch.url"
	KeyMeiliAPIKey       = "meilisearch.api_key"
	KeyMeiliVideoIndex   = "meilisearch.video_index"
	KeyMeiliChapterIndex = "meilisearch.chapter_index"
	KeyYouTubeAPIKey     = "youtube.api_key"
	KeyYouTubeSecret     = "youtube.client_secret_path"
	KeyYouTubeToken      = "youtube.token_path"
	KeyYouTubeChannel    = "youtube.channel_id"
	KeyYouTubePageSize   = "youtube.page_size"
	KeyYouTubeRate       = "youtube.requests_per_second"
	KeyServerListen      = "server.listen"
	KeyServerRate        = "server.requests_per_second"
	KeyServerBurst       = "server.burst"
	KeyIngestConcurrency = "ingest.concurrency"
	KeyIngestRecent      = "ingest.recent"
	KeyIngestHistory     = "ingest.history"
	KeySearchDayOffset   = "search.day_offset_hours"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
)

type settingKey struct {
	key    string
	kind   keyKind
	secret bool
	value  func(s *domain.Settings) any
}

var settingKeys = []settingKey{
	{KeyMeiliURL, kindString, false, func(s *domain.Settings) any { return s.Meilisearch.URL }},
	{KeyMeiliAPIKey, kindString, true, func(s *domain.Settings) any { return s.Meilisearch.APIKey }},
	{KeyMeiliVideoIndex, kindString, false, func(s *domain.Settings) any { return s.Meilisearch.VideoIndex }},
	{KeyMeiliChapterIndex, kindString, false, func(s *domain.Settings) any { return s.Meilisearch.ChapterIndex }},
	{KeyYouTubeAPIKey, kindString, true, func(s *domain.Settings) any { return s.YouTube.APIKey }},
	{KeyYouTubeSecret, kindString, false, func(s *domain.Settings) any { return s.YouTube.ClientSecretPath }},
	{KeyYouTubeToken, kindString, false, func(s *domain.Settings) any { return s.YouTube.TokenPath }},
	{KeyYouTubeChannel, kindString, false, func(s *domain.Settings) any { return s.YouTube.ChannelID }},
	{KeyYouTubePageSize, kindInt, false, func(s *domain.Settings) any { return s.YouTube.PageSize }},
	{KeyYouTubeRate, kindFloat, false, func(s *domain.Settings) any { return s.YouTube.RequestsPerSecond }},
	{KeyServerListen, kindString, false, func(s *domain.Settings) any { return s.Server.Listen }},
	{KeyServerRate, kindFloat, false, func(s *domain.Settings) any { return s.Server.RequestsPerSecond }},
	{KeyServerBurst, kindInt, false, func(s *domain.Settings) any { return s.Server.Burst }},
	{KeyIngestConcurrency, kindInt, false, func(s *domain.Settings) any { return s.Ingest.Concurrency }},
	{KeyIngestRecent, kindInt, false, func(s *domain.Settings) any { return s.Ingest.Recent }},
	{KeyIngestHistory, kindInt, false, func(s *domain.Settings) any { return s.Ingest.History }},
	{KeySearchDayOffset, kindInt, false, func(s *domain.Settings) any { return s.Search.DayOffsetHours }},
}

// SettingsService maps the flat config store onto domain.Settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the stored settings with defaults for missing keys.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := &domain.Settings{
		Meilisearch: domain.MeilisearchSettings{
			URL:          s.getString(KeyMeiliURL, d.Meilisearch.URL),
			APIKey:       s.configStore.GetString(KeyMeiliAPIKey),
			VideoIndex:   s.getString(KeyMeiliVideoIndex, d.Meilisearch.VideoIndex),
			ChapterIndex: s.getString(KeyMeiliChapterIndex, d.Meilisearch.ChapterIndex),
		},
		YouTube: domain.YouTubeSettings{
			APIKey:            s.configStore.GetString(KeyYouTubeAPIKey),
			ClientSecretPath:  s.configStore.GetString(KeyYouTubeSecret),
			TokenPath:         s.configStore.GetString(KeyYouTubeToken),
			ChannelID:         s.configStore.GetString(KeyYouTubeChannel),
			PageSize:          s.getInt(KeyYouTubePageSize, d.YouTube.PageSize),
			RequestsPerSecond: s.getFloat(KeyYouTubeRate, d.YouTube.RequestsPerSecond),
		},
		Server: domain.ServerSettings{
			Listen:            s.getString(KeyServerListen, d.Server.Listen),
			RequestsPerSecond: s.getFloat(KeyServerRate, d.Server.RequestsPerSecond),
			Burst:             s.getInt(KeyServerBurst, d.Server.Burst),
		},
		Ingest: domain.IngestSettings{
			Concurrency: s.getInt(KeyIngestConcurrency, d.Ingest.Concurrency),
			Recent:      s.getInt(KeyIngestRecent, d.Ingest.Recent),
			History:     s.getInt(KeyIngestHistory, d.Ingest.History),
		},
		Search: domain.SearchSettings{
			DayOffsetHours: s.getInt(KeySearchDayOffset, d.Search.DayOffsetHours),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	for _, k := range settingKeys {
		if k.key != key {
			continue
		}
		var parsed any
		switch k.kind {
		case kindInt:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%w: %s expects an integer", domain.ErrInvalidInput, key)
			}
			parsed = int64(n)
		case kindFloat:
			f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return fmt.Errorf("%w: %s expects a number", domain.ErrInvalidInput, key)
			}
			parsed = f
		default:
			parsed = value
		}
		if err := s.configStore.Set(key, parsed); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Keys lists the settable keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// Values returns every key with its effective value, in Keys order.
func (s *SettingsService) Values() ([]driving.SettingValue, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	values := make([]driving.SettingValue, len(settingKeys))
	for i, k := range settingKeys {
		values[i] = driving.SettingValue{
			Key:    k.key,
			Value:  fmt.Sprint(k.value(settings)),
			Secret: k.secret,
		}
	}
	return values, nil
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetFloat(key)
}
