package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// SearchInput is the input schema for the search_chapters tool.
type SearchInput struct {
	Query    string   `json:"query" jsonschema:"words to look for in chapter labels"`
	VideoIDs []string `json:"video_ids,omitempty" jsonschema:"only return chapters of these videos"`
	Tags     []string `json:"tags,omitempty" jsonschema:"only return chapters of videos with any of these tags"`
	From     string   `json:"from,omitempty" jsonschema:"first day to include, YYYY-MM-DD"`
	To       string   `json:"to,omitempty" jsonschema:"last day to include, YYYY-MM-DD"`
	At       string   `json:"at,omitempty" jsonschema:"a single day, YYYY-MM-DD; overrides from and to"`
	Page     int      `json:"page,omitempty" jsonschema:"1-based page (default 1)"`
	PerPage  int      `json:"per_page,omitempty" jsonschema:"hits per page (default 10, max 100)"`
}

// SearchOutput is the output schema for the search_chapters tool.
type SearchOutput struct {
	Results    []ChapterOutput `json:"results"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	TotalHits  int             `json:"total_hits"`
}

// ChapterOutput is one chapter hit.
type ChapterOutput struct {
	ChapterID   string   `json:"chapter_id"`
	VideoID     string   `json:"video_id"`
	VideoTitle  string   `json:"video_title,omitempty"`
	Label       string   `json:"label"`
	Timestamp   string   `json:"timestamp"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags,omitempty"`
	PublishedAt int64    `json:"published_or_live_at"`
}

const defaultToolPerPage = 10

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_chapters",
		Description: "Search timestamped chapters of indexed videos, newest first",
	}, s.handleSearch)
}

// handleSearch handles the search_chapters tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req, err := input.toRequest()
	if err != nil {
		return nil, SearchOutput{}, err
	}

	page, err := s.ports.Search.Search(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results:    make([]ChapterOutput, len(page.Items)),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalHits:  page.TotalHits,
	}
	for i := range page.Items {
		output.Results[i] = toChapterOutput(&page.Items[i])
	}
	return nil, output, nil
}

func (in SearchInput) toRequest() (domain.SearchRequest, error) {
	req := domain.NewSearchRequest(strings.TrimSpace(in.Query))
	req.VideoIDs = in.VideoIDs
	req.Tags = in.Tags
	req.PerPage = defaultToolPerPage
	if in.Page > 0 {
		req.Page = in.Page
	}
	if in.PerPage > 0 {
		req.PerPage = in.PerPage
	}
	// Titles and tags are always included.
	req.Parts = []domain.Part{domain.PartVideoTitle, domain.PartVideoTags}

	for _, d := range []struct {
		raw string
		dst **domain.Date
	}{{in.From, &req.From}, {in.To, &req.To}, {in.At, &req.At}} {
		if d.raw == "" {
			continue
		}
		parsed, err := domain.ParseDate(d.raw)
		if err != nil {
			return req, err
		}
		*d.dst = &parsed
	}
	return req, req.Validate()
}

func toChapterOutput(doc *domain.ChapterDocument) ChapterOutput {
	out := ChapterOutput{
		ChapterID:   doc.PID,
		VideoID:     doc.VideoID,
		Label:       doc.Description,
		Timestamp:   domain.FormatElapsed(doc.ElapsedTime),
		URL:         doc.WatchURL(),
		PublishedAt: doc.PublishedOrLiveAt,
	}
	if doc.VideoDetails != nil {
		out.VideoTitle = doc.VideoDetails.VideoTitle
		out.Tags = doc.VideoDetails.VideoTags
	}
	return out
}
