package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sahildmk/intention-app/internal/autosave"
	"github.com/sahildmk/intention-app/internal/domain"
)

// Saver returns the client as an autosave.Saver. Updates always send both
// times since the editor owns the full draft.
func (c *Client) Saver() autosave.Saver { return saver{c: c} }

type saver struct{ c *Client }

func (s saver) Create(ctx context.Context, content string, start, end time.Time) (domain.CollectionItem, error) {
	return s.c.CreateCollectionItem(ctx, content, start, end)
}

func (s saver) Update(ctx context.Context, id uuid.UUID, content string, start, end time.Time) (domain.CollectionItem, error) {
	return s.c.UpdateCollectionItem(ctx, id, content, &start, &end)
}
