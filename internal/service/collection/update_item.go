package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/sahildmk/intention-app/internal/domain"
	"github.com/sahildmk/intention-app/pkg/ctxutil"
)

// UpdateItem overwrites the content and, when given, the time block of an item.
// An item that does not exist or belongs to another user yields ErrNotFound.
func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (*domain.CollectionItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.items.Update(ctx, userID, input.ItemID, input.Content,
		utcPtr(input.StartDateTime), utcPtr(input.EndDateTime))
	if err != nil {
		return nil, fmt.Errorf("collection.UpdateItem: %w", err)
	}

	return item, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
