// Package cli provides the tssearch command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tssearch/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services configured by SetServices or the bootstrap hook.
var (
	searchService   driving.SearchService
	ingestService   driving.IngestService
	indexService    driving.IndexAdminService
	settingsService driving.SettingsService
	healthChecker   httpapi.HealthChecker
)

// Services groups the driving ports the commands call.
type Services struct {
	Search   driving.SearchService
	Ingest   driving.IngestService
	Index    driving.IndexAdminService
	Settings driving.SettingsService
	Health   httpapi.HealthChecker
}

// BootstrapOptions carries flag values the wiring needs.
type BootstrapOptions struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string
	// DumpPath is the JSON dump a fetch reads from, if any.
	DumpPath string
}

// BootstrapFunc builds services. The returned cleanup is called once the
// command finishes.
type BootstrapFunc func(ctx context.Context, opts BootstrapOptions) (*Services, func(), error)

var (
	bootstrap BootstrapFunc
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "tssearch",
	Short: "Search video chapters by keyword",
	Long: `tssearch ingests a channel's uploads, extracts the timestamped chapters
from each description, and indexes them in Meilisearch for keyword search.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { runCleanup() },
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.tssearch)")
}

// SetServices installs services directly, bypassing the bootstrap hook.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	ingestService = s.Ingest
	indexService = s.Index
	settingsService = s.Settings
	healthChecker = s.Health
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	defer runCleanup()
	return rootCmd.ExecuteContext(ctx)
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || cmd.Annotations[skipBootstrap] != "" || cmd.Name() == "help" {
		return nil
	}

	services, done, err := bootstrap(cmd.Context(), BootstrapOptions{
		ConfigDir: configDir,
		DumpPath:  fetchInJSON,
	})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// requireService returns an error naming the missing service.
func requireService(ok bool, name string) error {
	if !ok {
		return errors.New(name + " service not configured")
	}
	return nil
}

// displayZone is the zone dates are shown in, matching how day filters
// are interpreted.
func displayZone() *time.Location {
	if settingsService == nil {
		return time.UTC
	}
	settings, err := settingsService.Get()
	if err != nil {
		return time.UTC
	}
	return settings.Search.DayZone()
}
