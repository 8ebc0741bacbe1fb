package gormstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahildmk/intention-app/internal/domain"
)

type itemModel struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Content         string    `gorm:"column:content;not null"`
	StartDateTime   time.Time `gorm:"column:start_date_time;not null"`
	EndDateTime     time.Time `gorm:"column:end_date_time;not null"`
	CreatedDateTime time.Time `gorm:"column:created_date_time;not null;default:now()"`
}

func (itemModel) TableName() string { return "collection_items" }

func (m itemModel) toDomain() domain.CollectionItem {
	return domain.CollectionItem{
		ID:              m.ID,
		UserID:          m.UserID,
		Content:         m.Content,
		StartDateTime:   m.StartDateTime,
		EndDateTime:     m.EndDateTime,
		CreatedDateTime: m.CreatedDateTime,
	}
}

func toDomainList(rows []itemModel) []domain.CollectionItem {
	items := make([]domain.CollectionItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toDomain())
	}
	return items
}
