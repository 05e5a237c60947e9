package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/terraincognita07/baseapp/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByAPIKey(ctx context.Context, apiKey string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).Where("api_key = ?", apiKey).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByResetPasswordToken(ctx context.Context, tokenDigest string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_token <> ''", tokenDigest).
		First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ExistsByNormalizedEmail ignores the user with excludeID so that an update
// keeping its own email is not reported as a duplicate.
func (repo *UserRepository) ExistsByNormalizedEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	query := repo.database.WithContext(ctx).Model(&models.User{}).Where("lower(trim(email)) = ?", email)
	if strings.TrimSpace(excludeID) != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var matched int64
	if err := query.Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CreateWithAccount inserts account (when non-nil) and user in one
// transaction, so a user never exists without its account.
func (repo *UserRepository) CreateWithAccount(ctx context.Context, user *models.User, account *models.Account) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if account != nil {
			if err := tx.Create(account).Error; err != nil {
				return fmt.Errorf("create account: %w", err)
			}
		}
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

func (repo *UserRepository) Save(ctx context.Context, user *models.User) error {
	if err := repo.database.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (repo *UserRepository) UpdateByID(ctx context.Context, userID string, updates map[string]any) error {
	return repo.database.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.User{}).Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) ListByAccount(ctx context.Context, accountID string) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC, id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user; owned collections go with it through ON DELETE
// CASCADE. An account left without members is removed in the same transaction.
func (repo *UserRepository) Delete(ctx context.Context, userID string) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.User{}).Where("account_id = ?", user.AccountID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		return tx.Delete(&models.Account{}, "id = ?", user.AccountID).Error
	})
}
