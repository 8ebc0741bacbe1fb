package collection

import (
	"context"
	"fmt"

	"github.com/sahildmk/intention-app/internal/domain"
	"github.com/sahildmk/intention-app/pkg/ctxutil"
)

// ListItems returns every item of the session user, ascending by start time.
// A user with no items gets an empty, non-nil slice.
func (s *Service) ListItems(ctx context.Context) ([]domain.CollectionItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.items.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("collection.ListItems: %w", err)
	}
	if items == nil {
		items = []domain.CollectionItem{}
	}
	return items, nil
}

// ListCurrentAndFutureItems returns the session user's items that have not
// ended yet, ascending by start time.
func (s *Service) ListCurrentAndFutureItems(ctx context.Context) ([]domain.CollectionItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.items.ListCurrentAndFutureByOwner(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("collection.ListCurrentAndFutureItems: %w", err)
	}
	if items == nil {
		items = []domain.CollectionItem{}
	}
	return items, nil
}
