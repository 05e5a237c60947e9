package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/baseapp/internal/models"
	"gorm.io/gorm"
)

var ErrPlanLimitNotFound = errors.New("plan limit not found")

type AccountRepository struct {
	database *gorm.DB
}

func NewAccountRepository(database *gorm.DB) *AccountRepository {
	return &AccountRepository{database: database}
}

func (repo *AccountRepository) FindByID(ctx context.Context, accountID string) (models.Account, error) {
	var account models.Account
	if err := repo.database.WithContext(ctx).Where("id = ?", accountID).First(&account).Error; err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (repo *AccountRepository) UpdatePlan(ctx context.Context, accountID string, plan string) error {
	return repo.database.WithContext(ctx).Model(&models.Account{}).Where("id = ?", accountID).Update("plan", plan).Error
}

type PlanLimitRepository struct {
	database *gorm.DB
}

func NewPlanLimitRepository(database *gorm.DB) *PlanLimitRepository {
	return &PlanLimitRepository{database: database}
}

// Lookup returns the numeric ceiling for (plan, resource), or
// ErrPlanLimitNotFound when the settings table has no such row.
func (repo *PlanLimitRepository) Lookup(ctx context.Context, plan string, resource string) (int64, error) {
	var limit models.PlanLimit
	result := repo.database.WithContext(ctx).
		Where("plan = ? AND resource = ?", plan, resource).
		Limit(1).
		Find(&limit)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrPlanLimitNotFound
	}
	return limit.Limit, nil
}

func (repo *PlanLimitRepository) ListByPlan(ctx context.Context, plan string) ([]models.PlanLimit, error) {
	limits := make([]models.PlanLimit, 0)
	if err := repo.database.WithContext(ctx).Where("plan = ?", plan).Order("resource ASC").Find(&limits).Error; err != nil {
		return nil, err
	}
	return limits, nil
}

func (repo *PlanLimitRepository) PlanExists(ctx context.Context, plan string) (bool, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.PlanLimit{}).Where("plan = ?", plan).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
