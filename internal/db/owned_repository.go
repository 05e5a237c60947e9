package db

import (
	"context"

	"gorm.io/gorm"
)

// OwnedRepository serves a collection that belongs to exactly one user. Every
// query is scoped by user_id; records are ordered by insertion.
type OwnedRepository[T any] struct {
	database *gorm.DB
}

func NewOwnedRepository[T any](database *gorm.DB) *OwnedRepository[T] {
	return &OwnedRepository[T]{database: database}
}

func (repo *OwnedRepository[T]) List(ctx context.Context, userID string) ([]T, error) {
	records := make([]T, 0)
	if err := repo.database.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *OwnedRepository[T]) Find(ctx context.Context, userID string, id uint) (T, error) {
	var record T
	if err := repo.database.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&record).Error; err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

func (repo *OwnedRepository[T]) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(new(T)).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *OwnedRepository[T]) Create(ctx context.Context, record *T) error {
	return repo.database.WithContext(ctx).Create(record).Error
}

func (repo *OwnedRepository[T]) Save(ctx context.Context, record *T) error {
	return repo.database.WithContext(ctx).Save(record).Error
}

// Delete reports false when no record with id belongs to userID.
func (repo *OwnedRepository[T]) Delete(ctx context.Context, userID string, id uint) (bool, error) {
	result := repo.database.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
