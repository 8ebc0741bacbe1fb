package autosave

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sahildmk/intention-app/internal/domain"
)

// Saver persists drafts. The client package implements it over RPC.
type Saver interface {
	Create(ctx context.Context, content string, start, end time.Time) (domain.CollectionItem, error)
	Update(ctx context.Context, id uuid.UUID, content string, start, end time.Time) (domain.CollectionItem, error)
}

//go:generate moq -out saver_mock_test.go -pkg autosave . Saver

// Notifier receives save outcomes. Calls happen on the saving goroutine and
// never while the editor lock is held.
type Notifier interface {
	Saved(d Draft)
	SaveFailed(err error)
}

// NopNotifier ignores every outcome.
type NopNotifier struct{}

func (NopNotifier) Saved(Draft)      {}
func (NopNotifier) SaveFailed(error) {}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	OnSaved  func(d Draft)
	OnFailed func(err error)
}

func (n NotifierFuncs) Saved(d Draft) {
	if n.OnSaved != nil {
		n.OnSaved(d)
	}
}

func (n NotifierFuncs) SaveFailed(err error) {
	if n.OnFailed != nil {
		n.OnFailed(err)
	}
}
