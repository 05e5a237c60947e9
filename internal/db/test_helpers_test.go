package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/terraincognita07/baseapp/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "baseapp-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func createTestUser(t *testing.T, repos *Repositories, email string) models.User {
	t.Helper()

	account := models.Account{ID: uuid.NewString(), Plan: models.PlanFree}
	user := models.User{
		ID:                uuid.NewString(),
		AccountID:         account.ID,
		Email:             email,
		EncryptedPassword: "hash",
		FirstName:         "Ada",
		LastName:          "Lovelace",
		Role:              string(models.RoleAdmin),
		AccountOwner:      true,
		APIKey:            "key-" + email,
	}
	if err := repos.Users.CreateWithAccount(context.Background(), &user, &account); err != nil {
		t.Fatalf("create user with account: %v", err)
	}
	return user
}
