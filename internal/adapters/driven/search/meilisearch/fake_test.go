package meilisearch

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	ms "github.com/meilisearch/meilisearch-go"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// fakeEngine is an in-process stand-in for a Meilisearch server.
type fakeEngine struct {
	mu        sync.Mutex
	nextTask  int64
	failTasks bool
	healthErr error
	status    string
	indexes   map[string]*fakeIndex
	created   []ms.IndexConfig
}

func newFakeEngine(existing ...string) *fakeEngine {
	e := &fakeEngine{status: "available", indexes: map[string]*fakeIndex{}}
	for _, uid := range existing {
		e.indexes[uid] = &fakeIndex{engine: e, primaryKey: "id", docs: map[string]map[string]any{}}
	}
	return e
}

func (e *fakeEngine) task() *ms.TaskInfo {
	e.nextTask++
	return &ms.TaskInfo{TaskUID: e.nextTask, Status: ms.TaskStatusEnqueued}
}

func (e *fakeEngine) index(uid string) *fakeIndex {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.indexes[uid]
	if !ok {
		idx = &fakeIndex{engine: e, uid: uid, docs: map[string]map[string]any{}}
		e.indexes[uid] = idx
	}
	return idx
}

func (e *fakeEngine) HealthWithContext(context.Context) (*ms.Health, error) {
	if e.healthErr != nil {
		return nil, e.healthErr
	}
	return &ms.Health{Status: e.status}, nil
}

func (e *fakeEngine) GetIndexWithContext(_ context.Context, uid string) (*ms.IndexResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.indexes[uid]
	if !ok || idx.primaryKey == "" {
		return nil, notFound()
	}
	return &ms.IndexResult{}, nil
}

func (e *fakeEngine) CreateIndexWithContext(_ context.Context, cfg *ms.IndexConfig) (*ms.TaskInfo, error) {
	e.mu.Lock()
	e.created = append(e.created, *cfg)
	e.mu.Unlock()
	e.index(cfg.Uid).primaryKey = cfg.PrimaryKey

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.task(), nil
}

func (e *fakeEngine) WaitForTaskWithContext(context.Context, int64, time.Duration) (*ms.Task, error) {
	if e.failTasks {
		return &ms.Task{Status: ms.TaskStatusFailed}, nil
	}
	return &ms.Task{Status: ms.TaskStatusSucceeded}, nil
}

// fakeIndex keeps documents as generic maps, like the engine does.
type fakeIndex struct {
	engine     *fakeEngine
	uid        string
	primaryKey string

	mu           sync.Mutex
	docs         map[string]map[string]any
	settings     *ms.Settings
	lastQuery    string
	lastSearch   *ms.SearchRequest
	lastFilter   any
	searchResult string
	err          error
}

func notFound() error {
	return &ms.Error{StatusCode: http.StatusNotFound}
}

func (f *fakeIndex) taskOrErr() (*ms.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.engine.mu.Lock()
	defer f.engine.mu.Unlock()
	return f.engine.task(), nil
}

func (f *fakeIndex) AddDocumentsWithContext(_ context.Context, docsPtr interface{}, _ ...string) (*ms.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	raw, err := json.Marshal(docsPtr)
	if err != nil {
		return nil, err
	}
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	f.mu.Lock()
	for _, d := range docs {
		id, _ := d[domain.AttrPID].(string)
		if id == "" {
			id, _ = d["id"].(string)
		}
		f.docs[id] = d
	}
	f.mu.Unlock()
	return f.taskOrErr()
}

func (f *fakeIndex) GetDocumentWithContext(_ context.Context, id string, _ *ms.DocumentQuery, out interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	doc, ok := f.docs[id]
	f.mu.Unlock()
	if !ok {
		return notFound()
	}
	raw, _ := json.Marshal(doc)
	return json.Unmarshal(raw, out)
}

func (f *fakeIndex) GetDocumentsWithContext(_ context.Context, q *ms.DocumentsQuery, res *ms.DocumentsResult) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.docs))
	for k := range f.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res.Total = int64(len(keys))
	res.Offset = q.Offset
	res.Limit = q.Limit
	res.Results = nil
	for i := q.Offset; i < int64(len(keys)) && i < q.Offset+q.Limit; i++ {
		res.Results = append(res.Results, f.docs[keys[i]])
	}
	return nil
}

func (f *fakeIndex) DeleteDocumentsWithContext(_ context.Context, ids []string) (*ms.TaskInfo, error) {
	f.mu.Lock()
	for _, id := range ids {
		delete(f.docs, id)
	}
	f.mu.Unlock()
	return f.taskOrErr()
}

func (f *fakeIndex) DeleteDocumentsByFilterWithContext(_ context.Context, filter interface{}) (*ms.TaskInfo, error) {
	f.mu.Lock()
	f.lastFilter = filter
	f.mu.Unlock()
	return f.taskOrErr()
}

func (f *fakeIndex) DeleteAllDocumentsWithContext(context.Context) (*ms.TaskInfo, error) {
	f.mu.Lock()
	f.docs = map[string]map[string]any{}
	f.mu.Unlock()
	return f.taskOrErr()
}

func (f *fakeIndex) SearchRawWithContext(_ context.Context, query string, req *ms.SearchRequest) (*json.RawMessage, error) {
	f.mu.Lock()
	f.lastQuery = query
	f.lastSearch = req
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	raw := json.RawMessage(f.searchResult)
	return &raw, nil
}

func (f *fakeIndex) UpdateSettingsWithContext(_ context.Context, s *ms.Settings) (*ms.TaskInfo, error) {
	f.mu.Lock()
	f.settings = s
	f.mu.Unlock()
	return f.taskOrErr()
}

func testSettings() domain.MeilisearchSettings {
	return domain.MeilisearchSettings{URL: "http://fake", VideoIndex: "videos", ChapterIndex: "timestamps"}
}

func newTestClient(engine *fakeEngine) *Client {
	c := newClient(engine, func(uid string) indexAPI { return engine.index(uid) }, testSettings())
	c.taskInterval = time.Millisecond
	return c
}
