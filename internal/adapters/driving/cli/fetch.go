package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tssearch/internal/connectors/jsonfile"
	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// progressInterval is how often a running ingestion is polled.
const progressInterval = 500 * time.Millisecond

var (
	fetchAll     bool
	fetchRecent  int
	fetchChannel string
	fetchInJSON  string
	fetchOutJSON string
	fetchWatch   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch uploads and index their chapters",
	Long: `Fetches a channel's uploads, extracts the timestamped chapters from each
description, and indexes videos and chapters.

By default only the newest uploads are fetched (ingest.recent). Use --all to
walk every page of the upload history.

--out-json writes the fetched videos to a dump file instead of indexing them.
--in-json indexes a dump file instead of calling the provider; with --watch
the dump is indexed again every time it changes.`,
	Example: `  tssearch fetch --recent 20
  tssearch fetch --all --out-json uploads.json
  tssearch fetch --in-json uploads.json --watch`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.BoolVar(&fetchAll, "all", false, "fetch every upload")
	f.IntVar(&fetchRecent, "recent", 0, "fetch only the newest N uploads (default ingest.recent)")
	f.StringVar(&fetchChannel, "channel", "", "channel id (default youtube.channel_id)")
	f.StringVar(&fetchInJSON, "in-json", "", "index videos from a JSON dump")
	f.StringVar(&fetchOutJSON, "out-json", "", "write fetched videos to a JSON dump without indexing")
	f.BoolVar(&fetchWatch, "watch", false, "with --in-json, re-index whenever the dump changes")
	fetchCmd.MarkFlagsMutuallyExclusive("all", "recent")
	fetchCmd.MarkFlagsMutuallyExclusive("in-json", "out-json")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	if err := requireService(ingestService != nil, "ingest"); err != nil {
		return err
	}
	if fetchWatch && fetchInJSON == "" {
		return fmt.Errorf("%w: --watch requires --in-json", domain.ErrInvalidInput)
	}

	opts, err := fetchOptions()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if fetchOutJSON != "" {
		videos, err := ingestService.Fetch(ctx, opts)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		if err := jsonfile.WriteFile(fetchOutJSON, videos); err != nil {
			return err
		}
		cmd.Printf("Wrote %d videos to %s\n", len(videos), fetchOutJSON)
		return nil
	}

	if err := ingestOnce(ctx, cmd, opts); err != nil {
		return err
	}
	if !fetchWatch {
		return nil
	}
	return watchDump(ctx, cmd, opts)
}

// fetchOptions resolves flags against the stored settings.
func fetchOptions() (driving.IngestOptions, error) {
	opts := driving.IngestOptions{
		ChannelID: fetchChannel,
		Recent:    fetchRecent,
		Source:    domain.SourceProvider,
	}

	var settings *domain.Settings
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return opts, err
		}
		settings = s
	}

	if fetchInJSON != "" {
		opts.Source = domain.SourceDump
		if opts.ChannelID == "" {
			opts.ChannelID = jsonfile.AnyChannel
		}
	} else {
		if settings != nil && !settings.YouTube.HasCredentials() {
			return opts, fmt.Errorf("%w: set youtube.api_key or youtube.client_secret_path and youtube.token_path",
				domain.ErrAuthRequired)
		}
		if opts.ChannelID == "" && settings != nil {
			opts.ChannelID = settings.YouTube.ChannelID
		}
		if opts.ChannelID == "" {
			return opts, fmt.Errorf("%w: no channel; pass --channel or set youtube.channel_id", domain.ErrInvalidInput)
		}
	}

	switch {
	case fetchAll:
		opts.Recent = 0
	case opts.Recent < 0:
		return opts, fmt.Errorf("%w: --recent must be positive", domain.ErrInvalidInput)
	case opts.Recent == 0 && settings != nil:
		opts.Recent = settings.Ingest.Recent
	}
	return opts, nil
}

func ingestOnce(ctx context.Context, cmd *cobra.Command, opts driving.IngestOptions) error {
	cmd.Printf("Fetching %s from %s...\n", channelLabel(opts.ChannelID), opts.Source)

	run, err := ingestWithProgress(ctx, cmd, ingestService, opts)
	if run != nil {
		printRun(cmd, run)
	}
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	return nil
}

// ingestWithProgress runs an ingestion while displaying progress updates.
func ingestWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	svc driving.IngestService,
	opts driving.IngestOptions,
) (*domain.IngestRun, error) {
	type result struct {
		run *domain.IngestRun
		err error
	}
	done := make(chan result, 1)
	go func() {
		run, err := svc.Ingest(ctx, opts)
		done <- result{run, err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case r := <-done:
			if lastCount > 0 {
				cmd.Println()
			}
			return r.run, r.err
		case <-ticker.C:
			status, err := svc.Status(ctx, opts.ChannelID)
			if err == nil && status != nil && status.VideosProcessed > lastCount {
				cmd.Printf("\rIndexing... %d videos (%d errors)", status.VideosProcessed, status.ErrorCount)
				lastCount = status.VideosProcessed
			}
		}
	}
}

// watchDump re-indexes the dump on every change until ctx is done.
func watchDump(ctx context.Context, cmd *cobra.Command, opts driving.IngestOptions) error {
	changes, err := jsonfile.Watch(ctx, fetchInJSON, jsonfile.DefaultSettle)
	if err != nil {
		return err
	}
	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", fetchInJSON)

	for range changes {
		if err := ingestOnce(ctx, cmd, opts); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			cmd.PrintErrf("Error: %v\n", err)
		}
	}
	return nil
}

func printRun(cmd *cobra.Command, run *domain.IngestRun) {
	cmd.Printf("Run %s %s: %d fetched, %d indexed, %d chapters, %d failures in %s\n",
		shortID(run.ID), run.Status, run.VideosFetched, run.VideosIndexed,
		run.ChaptersIndexed, run.Failures, run.Duration().Round(time.Millisecond))
}

func channelLabel(id string) string {
	if id == jsonfile.AnyChannel {
		return "all channels"
	}
	return "channel " + id
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
