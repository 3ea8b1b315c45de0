package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	indexJSON  bool
	clearForce bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the search indexes",
	Long:  `Create, inspect and empty the video and chapter indexes.`,
}

var indexSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create both indexes and apply their settings",
	Long: `Creates the video and chapter indexes if they are missing and applies the
searchable, filterable and sortable attributes. Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: runIndexSetup,
}

var indexGetCmd = &cobra.Command{
	Use:   "get [chapter-id]",
	Short: "Show one chapter",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexGet,
}

var indexVideoCmd = &cobra.Command{
	Use:   "video [video-id]",
	Short: "Show one video",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexVideo,
}

var indexDeleteCmd = &cobra.Command{
	Use:   "delete [chapter-id...]",
	Short: "Delete chapters",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIndexDelete,
}

var indexDeleteVideoCmd = &cobra.Command{
	Use:   "delete-video [video-id]",
	Short: "Delete a video and all of its chapters",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexDeleteVideo,
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every document from both indexes",
	Args:  cobra.NoArgs,
	RunE:  runIndexClear,
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count indexed videos and chapters",
	Args:  cobra.NoArgs,
	RunE:  runIndexStats,
}

func init() {
	indexGetCmd.Flags().BoolVar(&indexJSON, "json", false, "output as JSON")
	indexVideoCmd.Flags().BoolVar(&indexJSON, "json", false, "output as JSON")
	indexClearCmd.Flags().BoolVar(&clearForce, "force", false, "confirm deleting everything")

	indexCmd.AddCommand(indexSetupCmd)
	indexCmd.AddCommand(indexGetCmd)
	indexCmd.AddCommand(indexVideoCmd)
	indexCmd.AddCommand(indexDeleteCmd)
	indexCmd.AddCommand(indexDeleteVideoCmd)
	indexCmd.AddCommand(indexClearCmd)
	indexCmd.AddCommand(indexStatsCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexSetup(cmd *cobra.Command, _ []string) error {
	if err := requireService(indexService != nil, "index"); err != nil {
		return err
	}
	if err := indexService.Setup(cmd.Context()); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	cmd.Println("Indexes ready.")
	return nil
}

func runIndexGet(cmd *cobra.Command, args []string) error {
	if err := requireService(indexService != nil, "index"); err != nil {
		return err
	}
	doc, err := indexService.Chapter(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get chapter: %w", err)
	}
	if indexJSON {
		return printJSON(cmd, doc)
	}

	cmd.Printf("ID:        %s\n", doc.PID)
	cmd.Printf("Video:     %s\n", doc.VideoID)
	cmd.Printf("Label:     %s\n", doc.Description)
	cmd.Printf("Timestamp: %s\n", doc.Timestamp())
	cmd.Printf("URL:       %s\n", doc.WatchURL())
	return nil
}

func runIndexVideo(cmd *cobra.Command, args []string) error {
	if err := requireService(indexService != nil, "index"); err != nil {
		return err
	}
	doc, err := indexService.Video(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get video: %w", err)
	}
	return printJSON(cmd, doc)
}

func runIndexDelete(cmd *cobra.Command, args []string) error {
	if err := requireService(indexService != nil, "index"); err != nil {
		return err
	}
	if err := indexService.DeleteChapters(cmd.Context(), args); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	cmd.Printf("Deleted %d chapters.\n", len(args))
	return nil
}

func runIndexDeleteVideo(cmd *cobra.Command, args []string) error {
	if err := requireService(indexService != nil, "index"); err != nil {
		return err
	}
	if err := indexService.DeleteVideo(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	cmd.Printf("Deleted video %s and its chapters.\n", args[0])
	return nil
}

func runIndexClear(cmd *cobra.Command, _ []string) error {
	if err := requireService(indexService != nil, "index"); err != nil {
		return err
	}
	if !clearForce {
		return fmt.Errorf("refusing to clear without --force")
	}
	if err := indexService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	cmd.Println("Both indexes cleared.")
	return nil
}

func runIndexStats(cmd *cobra.Command, _ []string) error {
	if err := requireService(indexService != nil, "index"); err != nil {
		return err
	}
	stats, err := indexService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}
	cmd.Printf("Videos:   %d\n", stats.Videos)
	cmd.Printf("Chapters: %d\n", stats.Chapters)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
