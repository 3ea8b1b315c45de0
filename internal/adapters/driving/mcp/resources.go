package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "tssearch://"

const recentRuns = 20

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Number of videos and chapters in the indexes",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent ingestion runs, newest first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "videos/{videoId}",
		Name:        "video",
		Description: "A stored video document",
		MIMEType:    "application/json",
	}, s.handleVideoResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "chapters/{chapterId}",
		Name:        "chapter",
		Description: "A stored chapter document",
		MIMEType:    "application/json",
	}, s.handleChapterResource)
}

func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	stats, err := s.ports.Index.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}
	return jsonResource(req.Params.URI, map[string]int{
		"videos":   stats.Videos,
		"chapters": stats.Chapters,
	})
}

func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingest == nil {
		return jsonResource(req.Params.URI, []any{})
	}
	runs, err := s.ports.Ingest.Runs(ctx, recentRuns)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	type runInfo struct {
		ID       string `json:"id"`
		Channel  string `json:"channel"`
		Source   string `json:"source"`
		Status   string `json:"status"`
		Videos   int    `json:"videos_indexed"`
		Chapters int    `json:"chapters_indexed"`
		Failures int    `json:"failures"`
		Started  string `json:"started_at"`
		Error    string `json:"error,omitempty"`
	}
	infos := make([]runInfo, len(runs))
	for i := range runs {
		r := &runs[i]
		infos[i] = runInfo{
			ID:       r.ID,
			Channel:  r.ChannelID,
			Source:   string(r.Source),
			Status:   string(r.Status),
			Videos:   r.VideosIndexed,
			Chapters: r.ChaptersIndexed,
			Failures: r.Failures,
			Started:  r.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Error:    r.Error,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleVideoResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractID(req.Params.URI, "videos/")
	if s.ports.Index == nil || id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	video, err := s.ports.Index.Video(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return jsonResource(req.Params.URI, video)
}

func (s *Server) handleChapterResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractID(req.Params.URI, "chapters/")
	if s.ports.Index == nil || id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	chapter, err := s.ports.Index.Chapter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting chapter: %w", err)
	}
	return jsonResource(req.Params.URI, chapter)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractID returns the segment after uriScheme+kind, or "" when the
// URI does not match or has further path segments.
func extractID(uri, kind string) string {
	prefix := uriScheme + kind
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
