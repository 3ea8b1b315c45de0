package meilisearch

import (
	"context"
	"errors"
	"fmt"

	ms "github.com/meilisearch/meilisearch-go"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/ports/driven"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.IndexSetup = (*Client)(nil)

// Primary keys of the two indexes.
const (
	ChapterPrimaryKey = domain.AttrPID
	VideoPrimaryKey   = "id"
)

// ChapterSettings is applied to the chapter index by Setup.
func ChapterSettings() *ms.Settings {
	return &ms.Settings{
		SearchableAttributes: []string{domain.AttrDescription},
		FilterableAttributes: []string{
			domain.AttrVideoID,
			domain.AttrVideoTags,
			domain.AttrPublishedOrLiveAt,
		},
		SortableAttributes: []string{domain.AttrPublishedOrLiveAt, domain.AttrElapsedTime},
	}
}

// VideoSettings is applied to the video index by Setup.
func VideoSettings() *ms.Settings {
	return &ms.Settings{
		SearchableAttributes: []string{"title"},
		FilterableAttributes: []string{"channelId", "tags"},
		SortableAttributes:   []string{"publishedAt"},
	}
}

// Setup creates both indexes when missing and applies their settings.
// It is safe to run repeatedly.
func (c *Client) Setup(ctx context.Context) error {
	if err := c.Health(ctx); err != nil {
		return err
	}
	if err := c.ensureIndex(ctx, c.videoUID, VideoPrimaryKey, VideoSettings()); err != nil {
		return err
	}
	return c.ensureIndex(ctx, c.chapterUID, ChapterPrimaryKey, ChapterSettings())
}

func (c *Client) ensureIndex(ctx context.Context, uid, primaryKey string, settings *ms.Settings) error {
	_, err := c.svc.GetIndexWithContext(ctx, uid)
	switch {
	case err == nil:
		logger.Debug("index %s exists", uid)
	case errors.Is(classify(err), domain.ErrNotFound):
		logger.Info("creating index %s (primary key %s)", uid, primaryKey)
		info, createErr := c.svc.CreateIndexWithContext(ctx, &ms.IndexConfig{Uid: uid, PrimaryKey: primaryKey})
		if err := c.wait(ctx, "create index "+uid, info, createErr); err != nil {
			return err
		}
	default:
		return wrapError("get index "+uid, err)
	}

	info, err := c.index(uid).UpdateSettingsWithContext(ctx, settings)
	if err = c.wait(ctx, "update settings "+uid, info, err); err != nil {
		return fmt.Errorf("configure %s: %w", uid, err)
	}
	return nil
}
