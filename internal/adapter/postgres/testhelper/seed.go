package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahildmk/intention-app/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a placeholder password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Name:         "Test User " + suffix,
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderplacehold",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedCollectionItem inserts an item for the given owner.
func SeedCollectionItem(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, content string, start, end time.Time) domain.CollectionItem {
	t.Helper()

	item := domain.CollectionItem{
		ID:              uuid.New(),
		UserID:          userID,
		Content:         content,
		StartDateTime:   start.UTC().Truncate(time.Microsecond),
		EndDateTime:     end.UTC().Truncate(time.Microsecond),
		CreatedDateTime: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO collection_items (id, user_id, content, start_date_time, end_date_time, created_date_time)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.UserID, item.Content, item.StartDateTime, item.EndDateTime, item.CreatedDateTime,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCollectionItem: %v", err)
	}

	return item
}
