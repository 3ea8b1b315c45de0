package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	runsLimit int
	runsJSON  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent ingestion runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to show")
	runsCmd.Flags().BoolVar(&runsJSON, "json", false, "output runs as JSON")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if err := requireService(ingestService != nil, "ingest"); err != nil {
		return err
	}

	runs, err := ingestService.Runs(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if runsJSON {
		return printJSON(cmd, runs)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	zone := displayZone()
	for i := range runs {
		r := &runs[i]
		cmd.Printf("%s  %-9s %-8s %s  %d/%d videos  %d chapters  %d failures\n",
			shortID(r.ID), r.Status, r.Source, r.StartedAt.In(zone).Format(time.DateTime),
			r.VideosIndexed, r.VideosFetched, r.ChaptersIndexed, r.Failures)
		if r.Error != "" {
			cmd.Printf("          %s\n", r.Error)
		}
	}
	return nil
}
