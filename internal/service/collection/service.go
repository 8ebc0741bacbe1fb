// Package collection exposes the authenticated operations on a user's
// collection items.
package collection

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/sahildmk/intention-app/internal/domain"
)

// itemStore is satisfied by both the pgx repository and the gorm store.
type itemStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.CollectionItem, error)
	ListCurrentAndFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]domain.CollectionItem, error)
	Update(ctx context.Context, ownerID, itemID uuid.UUID, content string, start, end *time.Time) (*domain.CollectionItem, error)
	Create(ctx context.Context, item *domain.CollectionItem) (*domain.CollectionItem, error)
}

//go:generate moq -out item_store_mock_test.go -pkg collection . itemStore

// Service implements collection item operations for the session user.
type Service struct {
	log   *slog.Logger
	items itemStore
	clock clockwork.Clock
}

// NewService creates a collection service. A nil clock means the real clock.
func NewService(logger *slog.Logger, items itemStore, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		log:   logger.With("service", "collection"),
		items: items,
		clock: clock,
	}
}
