package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/logging"
	"github.com/terraincognita07/baseapp/internal/models"
	"github.com/terraincognita07/baseapp/internal/security"
	"gorm.io/gorm"
)

type ProvisionerUserRepository interface {
	FindByID(ctx context.Context, userID string) (models.User, error)
	ExistsByNormalizedEmail(ctx context.Context, email string, excludeID string) (bool, error)
	CreateWithAccount(ctx context.Context, user *models.User, account *models.Account) error
	Save(ctx context.Context, user *models.User) error
}

type AccountLookup interface {
	FindByID(ctx context.Context, accountID string) (models.Account, error)
}

type CreateUserInput struct {
	Email                string
	Password             string
	PasswordConfirmation string
	FirstName            string
	LastName             string
	AvatarURL            string
	InviteCode           string
	// AccountID attaches the user to an existing account. Empty provisions a
	// new account owned by the user.
	AccountID string
	// Role defaults to admin. Values outside the defined roles are kept as-is.
	Role string
}

// UpdateProfileInput carries only the fields the caller wants to change.
type UpdateProfileInput struct {
	FirstName            *string
	LastName             *string
	Email                *string
	AvatarURL            *string
	InviteCode           *string
	CurrentPassword      string
	Password             *string
	PasswordConfirmation *string
}

// Provisioner creates users, attaches them to accounts and assigns api keys.
type Provisioner struct {
	users       ProvisionerUserRepository
	accounts    AccountLookup
	inviteCodes map[string]struct{}
	logger      logging.Logger

	now   func() time.Time
	newID func() string
}

// NewProvisioner copies inviteCodes; later changes to the slice are not seen.
func NewProvisioner(users ProvisionerUserRepository, accounts AccountLookup, inviteCodes []string, logger logging.Logger) *Provisioner {
	codes := make(map[string]struct{}, len(inviteCodes))
	for _, code := range inviteCodes {
		codes[code] = struct{}{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Provisioner{
		users:       users,
		accounts:    accounts,
		inviteCodes: codes,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

func (provisioner *Provisioner) IsInviteCodeAllowed(code string) bool {
	_, ok := provisioner.inviteCodes[code]
	return ok
}

// Create validates input, reporting every violation at once, then persists the
// user together with its new account in a single transaction.
func (provisioner *Provisioner) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := NormalizeEmail(input.Email)
	inviteCode := strings.TrimSpace(input.InviteCode)
	accountID := strings.TrimSpace(input.AccountID)

	verr := &ValidationError{}
	if firstName == "" {
		verr.Add("first_name", msgBlank)
	}
	if lastName == "" {
		verr.Add("last_name", msgBlank)
	}
	if err := provisioner.validateEmail(ctx, verr, email, ""); err != nil {
		return nil, err
	}
	validateNewPassword(verr, input.Password, input.PasswordConfirmation)

	switch {
	case inviteCode == "":
		verr.Add("invite_code", msgBlank)
	case !provisioner.IsInviteCodeAllowed(inviteCode):
		verr.Add("invite_code", msgInvalid)
	}

	var account models.Account
	if accountID != "" {
		found, err := provisioner.accounts.FindByID(ctx, accountID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			verr.Add("account", msgMissing)
		case err != nil:
			return nil, fmt.Errorf("load account: %w", err)
		default:
			account = found
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	encryptedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = string(models.RoleAdmin)
	}

	now := provisioner.now()
	user := &models.User{
		ID:                provisioner.newID(),
		Email:             email,
		EncryptedPassword: encryptedPassword,
		FirstName:         firstName,
		LastName:          lastName,
		AvatarURL:         strings.TrimSpace(input.AvatarURL),
		Role:              role,
		InviteCode:        inviteCode,
	}

	var newAccount *models.Account
	if accountID == "" {
		newAccount = &models.Account{
			ID:   provisioner.newID(),
			Name: user.FullName(),
			Plan: models.DefaultPlan,
		}
		user.AccountID = newAccount.ID
		user.AccountOwner = true
	} else {
		user.AccountID = account.ID
	}
	user.APIKey = security.APIKey(user.ID, now)

	if err := provisioner.users.CreateWithAccount(ctx, user, newAccount); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			verr.Add("email", msgTaken)
			return nil, verr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if newAccount != nil {
		provisioner.logger.Info(ctx, "account provisioned", "account_id", newAccount.ID, "owner_id", user.ID)
	}
	provisioner.logger.Info(ctx, "user created", "user_id", user.ID, "account_id", user.AccountID, "role", user.Role)
	return user, nil
}

// Update edits an existing profile. Creation-only rules do not run: the
// invite code is neither checked nor changed, and the api key is kept.
func (provisioner *Provisioner) Update(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	user, err := provisioner.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	verr := &ValidationError{}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
		if user.FirstName == "" {
			verr.Add("first_name", msgBlank)
		}
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
		if user.LastName == "" {
			verr.Add("last_name", msgBlank)
		}
	}
	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email != NormalizeEmail(user.Email) {
			if err := provisioner.validateEmail(ctx, verr, email, user.ID); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if input.Password != nil && *input.Password != "" {
		if !PasswordMatches(user.EncryptedPassword, input.CurrentPassword) {
			verr.Add("current_password", msgInvalid)
		}
		confirmation := ""
		if input.PasswordConfirmation != nil {
			confirmation = *input.PasswordConfirmation
		}
		validateNewPassword(verr, *input.Password, confirmation)
	}

	if verr.HasErrors() {
		return nil, verr
	}

	if input.Password != nil && *input.Password != "" {
		encryptedPassword, err := HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.EncryptedPassword = encryptedPassword
	}

	if err := provisioner.users.Save(ctx, &user); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			verr.Add("email", msgTaken)
			return nil, verr
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &user, nil
}

func (provisioner *Provisioner) validateEmail(ctx context.Context, verr *ValidationError, email string, excludeID string) error {
	switch {
	case email == "":
		verr.Add("email", msgBlank)
		return nil
	case !IsValidEmailFormat(email):
		verr.Add("email", msgInvalid)
		return nil
	}

	exists, err := provisioner.users.ExistsByNormalizedEmail(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if exists {
		verr.Add("email", msgTaken)
	}
	return nil
}

func validateNewPassword(verr *ValidationError, password string, confirmation string) {
	if password == "" {
		verr.Add("password", msgBlank)
		return
	}
	if err := ValidatePasswordStrength(password); err != nil {
		verr.Add("password", msgTooWeak)
	}
	if confirmation != password {
		verr.Add("password_confirmation", msgConfirmation)
	}
}
