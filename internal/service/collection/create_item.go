package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sahildmk/intention-app/internal/domain"
	"github.com/sahildmk/intention-app/pkg/ctxutil"
)

// CreateItem stores a new item owned by the session user. The id and the
// creation time are assigned by the store.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*domain.CollectionItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.items.Create(ctx, &domain.CollectionItem{
		UserID:        userID,
		Content:       input.Content,
		StartDateTime: input.StartDateTime.UTC(),
		EndDateTime:   input.EndDateTime.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("collection.CreateItem: %w", err)
	}

	s.log.InfoContext(ctx, "collection item created",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()))

	return item, nil
}
