package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

var (
	searchIDs     []string
	searchTags    []string
	searchFrom    string
	searchTo      string
	searchAt      string
	searchParts   []string
	searchPage    int
	searchPerPage int
	searchLimit   int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed chapters",
	Long: `Searches chapter labels by keyword, newest video first.

Results can be narrowed to specific videos or tags and to a range of
publish days. Days are calendar days in the configured search offset
(search.day_offset_hours). --at selects one day and overrides --from/--to.`,
	Example: `  tssearch search "intro"
  tssearch search "main topic" --tags music,talk --from 2024-01-01 --to 2024-01-31
  tssearch search "q&a" --at 2024-03-02 --parts videoTitle,thumbnailUrl --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringSliceVar(&searchIDs, "ids", nil, "only these video ids")
	f.StringSliceVar(&searchTags, "tags", nil, "only videos with any of these tags")
	f.StringVar(&searchFrom, "from", "", "first publish day, YYYY-MM-DD")
	f.StringVar(&searchTo, "to", "", "last publish day, YYYY-MM-DD")
	f.StringVar(&searchAt, "at", "", "single publish day, YYYY-MM-DD")
	f.StringSliceVar(&searchParts, "parts", nil, "video detail parts to include")
	f.IntVar(&searchPage, "page", 1, "page number")
	f.IntVar(&searchPerPage, "per-page", domain.DefaultPerPage, "results per page")
	f.IntVarP(&searchLimit, "limit", "n", domain.DefaultLimit, "maximum number of hits considered")
	f.BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireService(searchService != nil, "search"); err != nil {
		return err
	}

	req, err := buildSearchRequest(args[0])
	if err != nil {
		return err
	}

	page, err := searchService.Search(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, page)
	}
	outputSearchTable(cmd, page, displayZone())
	return nil
}

func buildSearchRequest(query string) (domain.SearchRequest, error) {
	req := domain.NewSearchRequest(query)
	req.VideoIDs = searchIDs
	req.Tags = searchTags
	req.Page = searchPage
	req.PerPage = searchPerPage
	req.Limit = searchLimit

	var err error
	if req.From, err = optionalDate(searchFrom); err != nil {
		return req, err
	}
	if req.To, err = optionalDate(searchTo); err != nil {
		return req, err
	}
	if req.At, err = optionalDate(searchAt); err != nil {
		return req, err
	}
	if req.Parts, err = domain.ParseParts(strings.Join(searchParts, ",")); err != nil {
		return req, err
	}
	return req, req.Validate()
}

func optionalDate(s string) (*domain.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func outputSearchJSON(cmd *cobra.Command, page *domain.SearchResultPage) error {
	if page.Items == nil {
		page.Items = []domain.ChapterDocument{}
	}
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, page *domain.SearchResultPage, zone *time.Location) {
	if len(page.Items) == 0 {
		cmd.Println("No chapters found.")
		return
	}

	cmd.Printf("Page %d/%d (%d hits)\n\n", page.Page, page.TotalPages, page.TotalHits)
	for i, item := range page.Items {
		n := (page.Page-1)*page.PerPage + i + 1
		day := time.Unix(item.PublishedOrLiveAt, 0).In(zone).Format(time.DateOnly)
		cmd.Printf("  [%d] %s %s (%s)\n", n, item.Timestamp(), item.Description, day)
		if d := item.VideoDetails; d != nil && d.VideoTitle != "" {
			cmd.Printf("      %s\n", d.VideoTitle)
		}
		cmd.Printf("      %s\n\n", item.WatchURL())
	}
}
