package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/logging"
	"github.com/terraincognita07/baseapp/internal/services"
)

// CreateUserOptions mirrors the create-user flags.
type CreateUserOptions struct {
	Email      string
	FirstName  string
	LastName   string
	InviteCode string
	AccountID  string
	Role       string
}

// RunCreateUserCommand prompts for a password and provisions the user through
// the same rules the signup endpoint applies.
func RunCreateUserCommand(ctx context.Context, dbPath string, inviteCodes []string, options CreateUserOptions, logger logging.Logger, out io.Writer) error {
	password, confirmation, err := promptNewPassword(out)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database)

	repositories := db.NewRepositories(database)
	provisioner := services.NewProvisioner(repositories.Users, repositories.Accounts, inviteCodes, logger)

	user, err := provisioner.Create(ctx, services.CreateUserInput{
		Email:                options.Email,
		Password:             password,
		PasswordConfirmation: confirmation,
		FirstName:            options.FirstName,
		LastName:             options.LastName,
		InviteCode:           options.InviteCode,
		AccountID:            options.AccountID,
		Role:                 options.Role,
	})
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("user is invalid: %s", formatValidationError(verr))
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(out, "Created user %s (%s)\n", user.Email, user.ID)
	fmt.Fprintf(out, "Account: %s (owner: %t)\n", user.AccountID, user.AccountOwner)
	fmt.Fprintf(out, "API key: %s\n", user.APIKey)
	return nil
}

func promptNewPassword(out io.Writer) (string, string, error) {
	answers, err := promptSecrets(out, "Password", "Confirm password")
	if err != nil {
		return "", "", err
	}
	if len(answers) != 2 {
		return "", "", fmt.Errorf("expected password and confirmation, got %d answers", len(answers))
	}
	return answers[0], answers[1], nil
}

func formatValidationError(verr *services.ValidationError) string {
	parts := make([]string, 0, len(verr.Fields))
	for _, field := range verr.FieldNames() {
		parts = append(parts, field+" "+strings.Join(verr.Fields[field], ", "))
	}
	return strings.Join(parts, "; ")
}
