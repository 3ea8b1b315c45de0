package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/tssearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tssearch/internal/adapters/driven/search/meilisearch"
	"github.com/custodia-labs/tssearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tssearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/tssearch/internal/connectors/jsonfile"
	"github.com/custodia-labs/tssearch/internal/connectors/youtube"
	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/core/services"
	"github.com/custodia-labs/tssearch/internal/logger"
	"github.com/custodia-labs/tssearch/internal/postprocessors/chapters"
)

// bootstrap reads settings once and builds every service from them.
func bootstrap(ctx context.Context, opts cli.BootstrapOptions) (*cli.Services, func(), error) {
	if err := file.LoadDotEnv(); err != nil {
		return nil, nil, err
	}

	fileStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, err
	}
	settingsService := services.NewSettingsService(file.NewEnvStore(fileStore))

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Settings loaded from %s", settingsService.Path())

	engine := meilisearch.New(settings.Meilisearch)
	videos, chapterIndex := engine.Videos(), engine.Chapters()

	var runs driven.RunStore
	closeStore := func() {}
	if store, err := sqlite.NewStore(dataDir(opts.ConfigDir)); err != nil {
		logger.Warn("Run history disabled: %v", err)
	} else {
		runs = store.RunStore()
		closeStore = func() {
			if err := store.Close(); err != nil {
				logger.Warn("Closing run store: %v", err)
			}
		}
	}

	ingestOpts := []services.IngestOption{
		services.WithConcurrency(settings.Ingest.Concurrency),
		services.WithRunHistory(settings.Ingest.History),
	}
	if opts.DumpPath != "" {
		dump := services.NewFetcher(jsonfile.NewProvider(opts.DumpPath), services.WithPageSize(settings.YouTube.PageSize))
		ingestOpts = append(ingestOpts, services.WithSource(domain.SourceDump, dump))
	}

	fetcher, err := providerFetcher(ctx, settings)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	ingest := services.NewIngestService(fetcher, chapters.New(), videos, chapterIndex, runs, ingestOpts...)
	search := services.NewSearchService(chapterIndex, services.NewQueryCompiler(settings.Search.DayZone()))
	admin := services.NewIndexAdminService(engine, videos, chapterIndex)

	return &cli.Services{
		Search:   search,
		Ingest:   ingest,
		Index:    admin,
		Settings: settingsService,
		Health:   engine,
	}, closeStore, nil
}

// dataDir keeps run history next to the config when a config dir is given.
func dataDir(configDir string) string {
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, "data")
}

// providerFetcher returns nil when no provider credentials are configured.
func providerFetcher(ctx context.Context, settings *domain.Settings) (*services.Fetcher, error) {
	if !settings.YouTube.HasCredentials() {
		logger.Debug("No YouTube credentials; provider fetch disabled")
		return nil, nil
	}
	svc, err := youtube.NewService(ctx, settings.YouTube)
	if err != nil {
		return nil, fmt.Errorf("youtube: %w", err)
	}
	provider := youtube.NewProvider(svc, youtube.NewRateLimiter(settings.YouTube.RequestsPerSecond))
	return services.NewFetcher(provider, services.WithPageSize(settings.YouTube.PageSize)), nil
}
