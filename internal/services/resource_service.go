package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/baseapp/internal/models"
	"gorm.io/gorm"
)

var ErrResourceNotFound = errors.New("resource not found")

// CreateGuard runs before a record is created and vetoes it by returning an error.
type CreateGuard func(ctx context.Context, user models.User) error

// ChainGuards runs guards in order and stops at the first refusal.
func ChainGuards(guards ...CreateGuard) CreateGuard {
	return func(ctx context.Context, user models.User) error {
		for _, guard := range guards {
			if guard == nil {
				continue
			}
			if err := guard(ctx, user); err != nil {
				return err
			}
		}
		return nil
	}
}

type OwnedStore[T any] interface {
	List(ctx context.Context, userID string) ([]T, error)
	Find(ctx context.Context, userID string, id uint) (T, error)
	Create(ctx context.Context, record *T) error
	Save(ctx context.Context, record *T) error
	Delete(ctx context.Context, userID string, id uint) (bool, error)
}

// OwnedRecord is a pointer to a model that can be stamped with its owner and
// key, and that restores its server-owned fields from a stored copy.
type OwnedRecord[T any] interface {
	*T
	SetOwner(userID string)
	SetID(id uint)
	KeepServerFields(stored T)
}

// ResourceService is CRUD over one of the collections a user owns. Records of
// other users are reported as ErrResourceNotFound.
type ResourceService[T any, PT OwnedRecord[T]] struct {
	store OwnedStore[T]
	guard CreateGuard
}

func NewResourceService[T any, PT OwnedRecord[T]](store OwnedStore[T], guard CreateGuard) *ResourceService[T, PT] {
	return &ResourceService[T, PT]{store: store, guard: guard}
}

func (service *ResourceService[T, PT]) List(ctx context.Context, user models.User) ([]T, error) {
	return service.store.List(ctx, user.ID)
}

func (service *ResourceService[T, PT]) Get(ctx context.Context, user models.User, id uint) (T, error) {
	record, err := service.store.Find(ctx, user.ID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record, ErrResourceNotFound
	}
	return record, err
}

func (service *ResourceService[T, PT]) Create(ctx context.Context, user models.User, record *T) error {
	if service.guard != nil {
		if err := service.guard(ctx, user); err != nil {
			return err
		}
	}
	var blank T
	PT(record).KeepServerFields(blank)
	PT(record).SetID(0)
	PT(record).SetOwner(user.ID)
	if err := service.store.Create(ctx, record); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// Update loads the record, lets apply mutate it and saves it. Ownership, key
// and server-owned fields are restored after apply so they cannot be
// reassigned.
func (service *ResourceService[T, PT]) Update(ctx context.Context, user models.User, id uint, apply func(record *T) error) (T, error) {
	record, err := service.Get(ctx, user, id)
	if err != nil {
		return record, err
	}
	stored := record
	if err := apply(&record); err != nil {
		return record, err
	}
	PT(&record).KeepServerFields(stored)
	PT(&record).SetID(id)
	PT(&record).SetOwner(user.ID)
	if err := service.store.Save(ctx, &record); err != nil {
		return record, fmt.Errorf("save record: %w", err)
	}
	return record, nil
}

func (service *ResourceService[T, PT]) Delete(ctx context.Context, user models.User, id uint) error {
	deleted, err := service.store.Delete(ctx, user.ID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrResourceNotFound
	}
	return nil
}
