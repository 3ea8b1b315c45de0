package httpapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driving"
)

// HealthChecker reports whether the search engine can serve requests.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthResponse is the body of a successful health check.
type HealthResponse struct {
	Status string `json:"status"`
}

type handlers struct {
	search driving.SearchService
	health HealthChecker
}

func (h *handlers) healthCheck(c *gin.Context) {
	if h.health != nil {
		if err := h.health.Health(c.Request.Context()); err != nil {
			RespondError(c, err)
			return
		}
	}
	RespondOK(c, HealthResponse{Status: "ok"})
}

func (h *handlers) searchChapters(c *gin.Context) {
	req, err := parseSearchRequest(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	page, err := h.search.Search(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	if page.Items == nil {
		page.Items = []domain.ChapterDocument{}
	}
	RespondOK(c, page)
}

// parseSearchRequest reads q, ids, tags, startFrom, startTo, startAt,
// parts, page and perPage. List parameters may repeat or be comma separated.
func parseSearchRequest(c *gin.Context) (domain.SearchRequest, error) {
	req := domain.NewSearchRequest(c.Query("q"))
	req.VideoIDs = listParam(c, "ids")
	req.Tags = listParam(c, "tags")

	var err error
	if req.From, err = dateParam(c, "startFrom"); err != nil {
		return req, err
	}
	if req.To, err = dateParam(c, "startTo"); err != nil {
		return req, err
	}
	if req.At, err = dateParam(c, "startAt"); err != nil {
		return req, err
	}
	if req.Parts, err = domain.ParseParts(strings.Join(c.QueryArray("parts"), ",")); err != nil {
		return req, err
	}
	if req.Page, err = intParam(c, "page", req.Page); err != nil {
		return req, err
	}
	if req.PerPage, err = intParam(c, "perPage", req.PerPage); err != nil {
		return req, err
	}
	return req, req.Validate()
}

func listParam(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func intParam(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return n, nil
}

// dateParam accepts YYYY-MM-DD or an RFC 3339 timestamp. For timestamps
// only the calendar day as written is kept.
func dateParam(c *gin.Context, name string) (*domain.Date, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &domain.Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &d, nil
}
