package collection

import (
	"time"

	"github.com/google/uuid"

	"github.com/sahildmk/intention-app/internal/domain"
)

// maxContentBytes bounds a single intention.
const maxContentBytes = 16 * 1024

// CreateItemInput holds parameters for creating a collection item.
type CreateItemInput struct {
	Content       string
	StartDateTime time.Time
	EndDateTime   time.Time
}

// Validate checks the shape of the input. Ordering of start and end is not enforced.
func (i CreateItemInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Content) > maxContentBytes {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}
	if i.StartDateTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "startDateTime", Message: "required"})
	}
	if i.EndDateTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "endDateTime", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateItemInput holds parameters for updating a collection item.
// Nil times leave the stored value unchanged.
type UpdateItemInput struct {
	ItemID        uuid.UUID
	Content       string
	StartDateTime *time.Time
	EndDateTime   *time.Time
}

// Validate checks the shape of the input.
func (i UpdateItemInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "collectionItemId", Message: "required"})
	}
	if len(i.Content) > maxContentBytes {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}
	if i.StartDateTime != nil && i.StartDateTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "startDateTime", Message: "invalid"})
	}
	if i.EndDateTime != nil && i.EndDateTime.IsZero() {
		errs = append(errs, domain.FieldError{Field: "endDateTime", Message: "invalid"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
