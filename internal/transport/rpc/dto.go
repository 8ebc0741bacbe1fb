package rpc

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahildmk/intention-app/internal/domain"
)

// TimeLayout is ISO-8601 in UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ItemDTO is the public shape of a collection item.
type ItemDTO struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	Content         string `json:"content"`
	StartDateTime   string `json:"startDateTime"`
	EndDateTime     string `json:"endDateTime"`
	CreatedDateTime string `json:"createdDateTime"`
}

// ToItemDTO converts a domain item, normalizing every timestamp to UTC.
func ToItemDTO(item domain.CollectionItem) ItemDTO {
	return ItemDTO{
		ID:              item.ID.String(),
		UserID:          item.UserID.String(),
		Content:         item.Content,
		StartDateTime:   FormatTime(item.StartDateTime),
		EndDateTime:     FormatTime(item.EndDateTime),
		CreatedDateTime: FormatTime(item.CreatedDateTime),
	}
}

// ToItemDTOs converts a list, returning an empty non-nil slice for no items.
func ToItemDTOs(items []domain.CollectionItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemDTO(it))
	}
	return out
}

// ToDomain parses the DTO back into a domain item.
func (d ItemDTO) ToDomain() (domain.CollectionItem, error) {
	var errs []domain.FieldError
	id, err := uuid.Parse(d.ID)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "invalid uuid"})
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "invalid uuid"})
	}
	start, err := ParseTime(d.StartDateTime)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "startDateTime", Message: "invalid datetime"})
	}
	end, err := ParseTime(d.EndDateTime)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "endDateTime", Message: "invalid datetime"})
	}
	created, err := ParseTime(d.CreatedDateTime)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "createdDateTime", Message: "invalid datetime"})
	}
	if len(errs) > 0 {
		return domain.CollectionItem{}, domain.NewValidationErrors(errs)
	}
	return domain.CollectionItem{
		ID:              id,
		UserID:          userID,
		Content:         d.Content,
		StartDateTime:   start,
		EndDateTime:     end,
		CreatedDateTime: created,
	}, nil
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts any RFC 3339 timestamp, with or without fractional seconds.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// UpdateItemRequest is the input of updateCollectionItem.
type UpdateItemRequest struct {
	CollectionItemID string  `json:"collectionItemId"`
	Content          *string `json:"content"`
	StartDateTime    *string `json:"startDateTime,omitempty"`
	EndDateTime      *string `json:"endDateTime,omitempty"`
}

// CreateItemRequest is the input of createCollectionItem.
type CreateItemRequest struct {
	Content       *string `json:"content"`
	StartDateTime string  `json:"startDateTime"`
	EndDateTime   string  `json:"endDateTime"`
}
