package jsonfile

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.VideoProvider = (*Provider)(nil)

// AnyChannel selects every video in the dump regardless of its channel.
const AnyChannel = "*"

// maxSnapshots bounds how many loads stay addressable at once.
const maxSnapshots = 8

// Provider serves a dump file as if it were a channel's uploads.
// The file is re-read on every UploadsCollection call, so each fetch
// sees the current dump. Each load is kept as its own snapshot named by
// the returned collection id, and page tokens are offsets into that
// snapshot, so concurrent walks never page through each other's loads.
type Provider struct {
	path string

	mu        sync.RWMutex
	seq       int
	snapshots map[string]*snapshot
	loaded    []string
}

type snapshot struct {
	channelID string
	order     []string
	videos    map[string]domain.Video
}

// NewProvider creates a provider for the dump at path.
func NewProvider(path string) *Provider {
	return &Provider{path: path, snapshots: make(map[string]*snapshot)}
}

// Path returns the dump path.
func (p *Provider) Path() string {
	return p.path
}

// UploadsCollection loads the dump and returns a collection id naming
// the loaded snapshot. Videos of other channels are hidden unless
// channelID is AnyChannel.
func (p *Provider) UploadsCollection(ctx context.Context, channelID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	videos, err := ReadFile(p.path)
	if err != nil {
		return "", err
	}

	snap := &snapshot{
		channelID: channelID,
		order:     make([]string, 0, len(videos)),
		videos:    make(map[string]domain.Video, len(videos)),
	}
	for _, v := range videos {
		if _, dup := snap.videos[v.ID]; !dup {
			snap.order = append(snap.order, v.ID)
		}
		snap.videos[v.ID] = v
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	id := fmt.Sprintf("%s#%d", channelID, p.seq)
	p.snapshots[id] = snap
	p.loaded = append(p.loaded, id)
	if len(p.loaded) > maxSnapshots {
		delete(p.snapshots, p.loaded[0])
		p.loaded = p.loaded[1:]
	}
	return id, nil
}

// ListItems pages through a loaded snapshot in file order.
func (p *Provider) ListItems(ctx context.Context, collectionID, pageToken string, pageSize int) (*driven.ItemPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	offset := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: page token %q", domain.ErrInvalidInput, pageToken)
		}
		offset = n
	}
	pageSize = min(max(pageSize, 1), driven.MaxPageSize)

	p.mu.RLock()
	defer p.mu.RUnlock()

	snap, ok := p.snapshots[collectionID]
	if !ok {
		return nil, fmt.Errorf("%w: collection %s not loaded", domain.ErrInvalidInput, collectionID)
	}

	page := &driven.ItemPage{}
	i := offset
	for ; i < len(snap.order) && len(page.Items) < pageSize; i++ {
		v := snap.videos[snap.order[i]]
		if !inChannel(v, snap.channelID) {
			continue
		}
		page.Items = append(page.Items, driven.CollectionItem{Kind: driven.VideoKind, ResourceID: v.ID})
	}
	if i < len(snap.order) {
		page.NextPageToken = strconv.Itoa(i)
	}
	return page, nil
}

// GetVideos returns videos with the given ids from the newest snapshot
// that holds each one, omitting unknown ids.
func (p *Provider) GetVideos(ctx context.Context, ids []string) ([]domain.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Video, 0, len(ids))
	for _, id := range ids {
		for i := len(p.loaded) - 1; i >= 0; i-- {
			if v, ok := p.snapshots[p.loaded[i]].videos[id]; ok {
				out = append(out, v)
				break
			}
		}
	}
	return out, nil
}

func inChannel(v domain.Video, channelID string) bool {
	return channelID == AnyChannel || v.Channel.ID == "" || v.Channel.ID == channelID
}
