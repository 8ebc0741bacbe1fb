package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionItem is an intention bound to a time block and its owner.
type CollectionItem struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Content         string
	StartDateTime   time.Time
	EndDateTime     time.Time
	CreatedDateTime time.Time
}

// IsCurrentOrFuture reports whether the block has not ended before now.
func (c CollectionItem) IsCurrentOrFuture(now time.Time) bool {
	return !c.EndDateTime.Before(now)
}

// Duration returns the length of the time block. It is negative when the
// end precedes the start, which is stored as given.
func (c CollectionItem) Duration() time.Duration {
	return c.EndDateTime.Sub(c.StartDateTime)
}

// FirstItem returns the item surfaced to the editor: the first element of an
// owner's list ordered by start time. ok is false for an empty list.
func FirstItem(items []CollectionItem) (item CollectionItem, ok bool) {
	if len(items) == 0 {
		return CollectionItem{}, false
	}
	return items[0], true
}
