package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/logging"
	"github.com/terraincognita07/baseapp/internal/security"
	"github.com/terraincognita07/baseapp/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand replaces the password of the user registered under
// email with a generated one and prints it to out.
func RunResetPasswordCommand(ctx context.Context, dbPath string, email string, logger logging.Logger, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database)

	temporaryPassword, err := resetPassword(ctx, db.NewUserRepository(database), email)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "Ask the user to change it after signing in.")
	return nil
}

func resetPassword(ctx context.Context, users *db.UserRepository, email string) (string, error) {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return "", errors.New("a valid email is required")
	}

	user, err := users.FindByNormalizedEmail(ctx, normalizedEmail)
	if db.IsNotFound(err) {
		return "", fmt.Errorf("user %s not found", normalizedEmail)
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := generateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	encryptedPassword, err := services.HashPassword(temporaryPassword)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}

	if err := users.UpdateByID(ctx, user.ID, map[string]any{
		"encrypted_password":     encryptedPassword,
		"reset_password_token":   "",
		"reset_password_sent_at": nil,
	}); err != nil {
		return "", fmt.Errorf("update user password: %w", err)
	}
	return temporaryPassword, nil
}

// generateTemporaryPassword draws until the result passes the password policy,
// so the user can sign in and keep it if they choose.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for {
		password, err := security.RandomString(length, security.TemporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
}

func closeDatabase(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
