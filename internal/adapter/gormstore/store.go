// Package gormstore implements the collection item accessor on top of GORM.
//
// It shares the schema created by the goose migrations and is selected with
// database.driver = "gorm". The pgx repository in adapter/postgres/collectionitem
// is the default.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	pgadapter "github.com/sahildmk/intention-app/internal/adapter/postgres"
	"github.com/sahildmk/intention-app/internal/domain"
)

const ordering = "start_date_time ASC, created_date_time ASC, id ASC"

// Store implements the collection item accessor with GORM.
type Store struct {
	db *gorm.DB
}

// New wraps an already opened *gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open builds a GORM handle that borrows connections from pool.
func Open(pool *pgxpool.Pool) (*Store, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return New(db), nil
}

// Close releases the database/sql handle. The underlying pool stays open.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListByOwner returns every item owned by ownerID ordered by start time.
func (s *Store) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.CollectionItem, error) {
	var rows []itemModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order(ordering).
		Find(&rows).Error
	if err != nil {
		return nil, mapError(err, uuid.Nil)
	}
	return toDomainList(rows), nil
}

// ListCurrentAndFutureByOwner returns items owned by ownerID that end at or after now.
func (s *Store) ListCurrentAndFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]domain.CollectionItem, error) {
	var rows []itemModel
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND end_date_time >= ?", ownerID, now).
		Order(ordering).
		Find(&rows).Error
	if err != nil {
		return nil, mapError(err, uuid.Nil)
	}
	return toDomainList(rows), nil
}

// Update overwrites content and, when provided, start and end.
func (s *Store) Update(ctx context.Context, ownerID, itemID uuid.UUID, content string, start, end *time.Time) (*domain.CollectionItem, error) {
	values := map[string]any{"content": content}
	if start != nil {
		values["start_date_time"] = *start
	}
	if end != nil {
		values["end_date_time"] = *end
	}

	var row itemModel
	res := s.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", itemID, ownerID).
		Updates(values)
	if res.Error != nil {
		return nil, mapError(res.Error, itemID)
	}
	if res.RowsAffected == 0 {
		return nil, mapError(pgx.ErrNoRows, itemID)
	}

	item := row.toDomain()
	return &item, nil
}

// Create inserts a new item; created_date_time comes from the column default.
func (s *Store) Create(ctx context.Context, item *domain.CollectionItem) (*domain.CollectionItem, error) {
	row := itemModel{
		ID:            item.ID,
		UserID:        item.UserID,
		Content:       item.Content,
		StartDateTime: item.StartDateTime,
		EndDateTime:   item.EndDateTime,
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, mapError(err, row.ID)
	}

	created := row.toDomain()
	return &created, nil
}

func mapError(err error, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = pgx.ErrNoRows
	}
	return pgadapter.MapError(err, "collection_item", id)
}
