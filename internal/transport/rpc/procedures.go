package rpc

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sahildmk/intention-app/internal/domain"
	"github.com/sahildmk/intention-app/internal/service/collection"
)

// Procedure names.
const (
	ProcGetCollectionItems                 = "getCollectionItems"
	ProcGetCurrentAndFutureCollectionItems = "getCurrentAndFutureCollectionItems"
	ProcUpdateCollectionItem               = "updateCollectionItem"
	ProcCreateCollectionItem               = "createCollectionItem"
)

type collectionService interface {
	ListItems(ctx context.Context) ([]domain.CollectionItem, error)
	ListCurrentAndFutureItems(ctx context.Context) ([]domain.CollectionItem, error)
	CreateItem(ctx context.Context, input collection.CreateItemInput) (*domain.CollectionItem, error)
	UpdateItem(ctx context.Context, input collection.UpdateItemInput) (*domain.CollectionItem, error)
}

//go:generate moq -out collection_service_mock_test.go -pkg rpc . collectionService

// RegisterCollection binds the collection procedures to svc.
func RegisterCollection(reg *Registry, svc collectionService) {
	reg.Register(Procedure{
		Name: ProcGetCollectionItems,
		Handle: NoInput(func(ctx context.Context) ([]ItemDTO, error) {
			items, err := svc.ListItems(ctx)
			if err != nil {
				return nil, err
			}
			return ToItemDTOs(items), nil
		}),
	})

	reg.Register(Procedure{
		Name: ProcGetCurrentAndFutureCollectionItems,
		Handle: NoInput(func(ctx context.Context) ([]ItemDTO, error) {
			items, err := svc.ListCurrentAndFutureItems(ctx)
			if err != nil {
				return nil, err
			}
			return ToItemDTOs(items), nil
		}),
	})

	reg.Register(Procedure{
		Name: ProcUpdateCollectionItem,
		Handle: Typed(func(ctx context.Context, req UpdateItemRequest) (ItemDTO, error) {
			input, err := req.toInput()
			if err != nil {
				return ItemDTO{}, err
			}
			item, err := svc.UpdateItem(ctx, input)
			if err != nil {
				return ItemDTO{}, err
			}
			return ToItemDTO(*item), nil
		}),
	})

	reg.Register(Procedure{
		Name: ProcCreateCollectionItem,
		Handle: Typed(func(ctx context.Context, req CreateItemRequest) (ItemDTO, error) {
			input, err := req.toInput()
			if err != nil {
				return ItemDTO{}, err
			}
			item, err := svc.CreateItem(ctx, input)
			if err != nil {
				return ItemDTO{}, err
			}
			return ToItemDTO(*item), nil
		}),
	})
}

func (r UpdateItemRequest) toInput() (collection.UpdateItemInput, error) {
	var errs []domain.FieldError
	var in collection.UpdateItemInput

	id, err := uuid.Parse(r.CollectionItemID)
	switch {
	case r.CollectionItemID == "":
		errs = append(errs, domain.FieldError{Field: "collectionItemId", Message: "required"})
	case err != nil:
		errs = append(errs, domain.FieldError{Field: "collectionItemId", Message: "invalid uuid"})
	default:
		in.ItemID = id
	}

	if r.Content == nil {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else {
		in.Content = *r.Content
	}

	in.StartDateTime, errs = optionalTime(errs, "startDateTime", r.StartDateTime)
	in.EndDateTime, errs = optionalTime(errs, "endDateTime", r.EndDateTime)

	if len(errs) > 0 {
		return collection.UpdateItemInput{}, domain.NewValidationErrors(errs)
	}
	return in, nil
}

func (r CreateItemRequest) toInput() (collection.CreateItemInput, error) {
	var errs []domain.FieldError
	var in collection.CreateItemInput

	if r.Content == nil {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else {
		in.Content = *r.Content
	}
	in.StartDateTime, errs = requiredTime(errs, "startDateTime", r.StartDateTime)
	in.EndDateTime, errs = requiredTime(errs, "endDateTime", r.EndDateTime)

	if len(errs) > 0 {
		return collection.CreateItemInput{}, domain.NewValidationErrors(errs)
	}
	return in, nil
}

func requiredTime(errs []domain.FieldError, field, raw string) (time.Time, []domain.FieldError) {
	if raw == "" {
		return time.Time{}, append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	t, err := ParseTime(raw)
	if err != nil {
		return time.Time{}, append(errs, domain.FieldError{Field: field, Message: "invalid datetime"})
	}
	return t, errs
}

func optionalTime(errs []domain.FieldError, field string, raw *string) (*time.Time, []domain.FieldError) {
	if raw == nil {
		return nil, errs
	}
	t, errs := requiredTime(errs, field, *raw)
	if t.IsZero() {
		return nil, errs
	}
	return &t, errs
}
