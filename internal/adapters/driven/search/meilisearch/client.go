package meilisearch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	ms "github.com/meilisearch/meilisearch-go"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// DefaultTaskInterval is how often a pending engine task is polled.
const DefaultTaskInterval = 50 * time.Millisecond

// serviceAPI is the part of ms.ServiceManager the adapter uses.
type serviceAPI interface {
	HealthWithContext(ctx context.Context) (*ms.Health, error)
	GetIndexWithContext(ctx context.Context, indexID string) (*ms.IndexResult, error)
	CreateIndexWithContext(ctx context.Context, config *ms.IndexConfig) (*ms.TaskInfo, error)
	WaitForTaskWithContext(ctx context.Context, taskUID int64, interval time.Duration) (*ms.Task, error)
}

// indexAPI is the part of ms.IndexManager the adapter uses.
type indexAPI interface {
	AddDocumentsWithContext(ctx context.Context, documentsPtr interface{}, primaryKey ...string) (*ms.TaskInfo, error)
	GetDocumentWithContext(ctx context.Context, identifier string, request *ms.DocumentQuery, documentPtr interface{}) error
	GetDocumentsWithContext(ctx context.Context, param *ms.DocumentsQuery, resp *ms.DocumentsResult) error
	DeleteDocumentsWithContext(ctx context.Context, identifiers []string) (*ms.TaskInfo, error)
	DeleteDocumentsByFilterWithContext(ctx context.Context, filter interface{}) (*ms.TaskInfo, error)
	DeleteAllDocumentsWithContext(ctx context.Context) (*ms.TaskInfo, error)
	SearchRawWithContext(ctx context.Context, query string, request *ms.SearchRequest) (*json.RawMessage, error)
	UpdateSettingsWithContext(ctx context.Context, request *ms.Settings) (*ms.TaskInfo, error)
}

// Client owns the engine connection shared by both indexes.
type Client struct {
	svc          serviceAPI
	index        func(uid string) indexAPI
	videoUID     string
	chapterUID   string
	taskInterval time.Duration
}

// New connects to the engine described by cfg. No request is made until
// the first call.
func New(cfg domain.MeilisearchSettings) *Client {
	var opts []ms.Option
	if cfg.APIKey != "" {
		opts = append(opts, ms.WithAPIKey(cfg.APIKey))
	}
	sm := ms.New(cfg.URL, opts...)
	return newClient(sm, func(uid string) indexAPI { return sm.Index(uid) }, cfg)
}

func newClient(svc serviceAPI, index func(uid string) indexAPI, cfg domain.MeilisearchSettings) *Client {
	return &Client{
		svc:          svc,
		index:        index,
		videoUID:     cfg.VideoIndex,
		chapterUID:   cfg.ChapterIndex,
		taskInterval: DefaultTaskInterval,
	}
}

// Chapters returns the chapter index.
func (c *Client) Chapters() *ChapterIndex {
	return &ChapterIndex{client: c, uid: c.chapterUID, idx: c.index(c.chapterUID)}
}

// Videos returns the video index.
func (c *Client) Videos() *VideoIndex {
	return &VideoIndex{client: c, uid: c.videoUID, idx: c.index(c.videoUID)}
}

// Health maps any failure or a non "available" status to ErrServiceUnavailable.
func (c *Client) Health(ctx context.Context) error {
	h, err := c.svc.HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("meilisearch health: %w: %w", domain.ErrServiceUnavailable, err)
	}
	if h == nil || h.Status != "available" {
		status := ""
		if h != nil {
			status = h.Status
		}
		return fmt.Errorf("meilisearch health: %w: status %q", domain.ErrServiceUnavailable, status)
	}
	return nil
}

// wait blocks until the task finishes and fails unless it succeeded.
func (c *Client) wait(ctx context.Context, op string, info *ms.TaskInfo, err error) error {
	if err != nil {
		return wrapError(op, err)
	}
	if info == nil {
		return fmt.Errorf("meilisearch %s: %w: no task returned", op, domain.ErrBadGateway)
	}
	task, err := c.svc.WaitForTaskWithContext(ctx, info.TaskUID, c.taskInterval)
	if err != nil {
		return wrapError(op, err)
	}
	if task.Status != ms.TaskStatusSucceeded {
		return fmt.Errorf("meilisearch %s: %w: task %d ended %s", op, domain.ErrBadGateway, info.TaskUID, task.Status)
	}
	return nil
}

// decodeDocuments converts the generic maps returned by the engine.
func decodeDocuments[T any](results []map[string]interface{}) ([]T, error) {
	out := make([]T, 0, len(results))
	for _, r := range results {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDomainParse, err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDomainParse, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// allPageSize is the batch size used when reading an entire index.
const allPageSize = 1000

// fetchAll reads every document of idx in batches.
func fetchAll[T any](ctx context.Context, idx indexAPI, op string) ([]T, error) {
	var out []T
	for offset := int64(0); ; offset += allPageSize {
		var res ms.DocumentsResult
		if err := idx.GetDocumentsWithContext(ctx, &ms.DocumentsQuery{Offset: offset, Limit: allPageSize}, &res); err != nil {
			return nil, wrapError(op, err)
		}
		docs, err := decodeDocuments[T](res.Results)
		if err != nil {
			return nil, fmt.Errorf("meilisearch %s: %w", op, err)
		}
		out = append(out, docs...)
		if len(res.Results) < allPageSize || offset+allPageSize >= res.Total {
			return out, nil
		}
	}
}
