package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/baseapp/internal/logging"
	"github.com/terraincognita07/baseapp/internal/models"
	"github.com/terraincognita07/baseapp/internal/security"
	"gorm.io/gorm"
)

const PasswordResetTokenTTL = 6 * time.Hour

var (
	ErrPasswordResetTokenMissing = errors.New("missing reset token")
	ErrPasswordResetTokenInvalid = errors.New("invalid reset token")
	ErrPasswordResetTokenExpired = errors.New("expired reset token")
)

type AuthUserRepository interface {
	FindByID(ctx context.Context, userID string) (models.User, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, error)
	FindByAPIKey(ctx context.Context, apiKey string) (models.User, error)
	FindByResetPasswordToken(ctx context.Context, tokenDigest string) (models.User, error)
	UpdateByID(ctx context.Context, userID string, updates map[string]any) error
}

// AuthService checks credentials and keeps the sign-in, remember-me and
// password reset bookkeeping stored on the user.
type AuthService struct {
	users  AuthUserRepository
	mailer Mailer
	logger logging.Logger
	now    func() time.Time
}

func NewAuthService(users AuthUserRepository, mailer Mailer, logger logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	if mailer == nil {
		mailer = NewLogMailer(logger)
	}
	return &AuthService{users: users, mailer: mailer, logger: logger, now: time.Now}
}

func (service *AuthService) FindByID(ctx context.Context, userID string) (models.User, error) {
	return service.users.FindByID(ctx, userID)
}

// FindByAPIKey maps unknown and blank keys to ErrAuthCredentialsInvalid.
func (service *AuthService) FindByAPIKey(ctx context.Context, apiKey string) (models.User, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	user, err := service.users.FindByAPIKey(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, err
}

func (service *AuthService) Authenticate(ctx context.Context, emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !PasswordMatches(user.EncryptedPassword, password) {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

// RecordSignIn rotates current sign-in time and IP into the last-sign-in
// fields and bumps the counter. remember stamps remember_created_at once.
func (service *AuthService) RecordSignIn(ctx context.Context, user *models.User, ip string, remember bool) error {
	now := service.now().UTC()

	lastAt := user.CurrentSignInAt
	if lastAt == nil {
		lastAt = &now
	}
	lastIP := user.CurrentSignInIP
	if lastIP == "" {
		lastIP = ip
	}

	updates := map[string]any{
		"sign_in_count":      user.SignInCount + 1,
		"last_sign_in_at":    *lastAt,
		"current_sign_in_at": now,
		"last_sign_in_ip":    lastIP,
		"current_sign_in_ip": ip,
	}
	if remember && user.RememberCreatedAt == nil {
		updates["remember_created_at"] = now
	}
	if err := service.users.UpdateByID(ctx, user.ID, updates); err != nil {
		return fmt.Errorf("record sign in: %w", err)
	}

	user.SignInCount++
	user.LastSignInAt = lastAt
	user.CurrentSignInAt = &now
	user.LastSignInIP = lastIP
	user.CurrentSignInIP = ip
	if remember && user.RememberCreatedAt == nil {
		user.RememberCreatedAt = &now
	}
	service.logger.Info(ctx, "user signed in", "user_id", user.ID, "sign_in_count", user.SignInCount, "remember", remember)
	return nil
}

// ForgetUser clears the remember-me stamp on logout.
func (service *AuthService) ForgetUser(ctx context.Context, userID string) error {
	return service.users.UpdateByID(ctx, userID, map[string]any{"remember_created_at": nil})
}

// RequestPasswordReset stores a fresh token digest and mails the raw token.
// Unknown addresses succeed silently so the response does not reveal accounts.
func (service *AuthService) RequestPasswordReset(ctx context.Context, emailRaw string) error {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return nil
	}

	user, err := service.users.FindByNormalizedEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		service.logger.Debug(ctx, "password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	raw, digest, err := security.NewResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := service.users.UpdateByID(ctx, user.ID, map[string]any{
		"reset_password_token":   digest,
		"reset_password_sent_at": service.now().UTC(),
	}); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	service.logger.Info(ctx, "password reset requested", "user_id", user.ID)
	return service.mailer.SendPasswordReset(ctx, user.Email, raw)
}

// ResetPassword consumes a reset token issued within PasswordResetTokenTTL.
func (service *AuthService) ResetPassword(ctx context.Context, rawToken string, password string, confirmation string) (models.User, error) {
	if strings.TrimSpace(rawToken) == "" {
		return models.User{}, ErrPasswordResetTokenMissing
	}

	digest := security.DigestResetToken(rawToken)
	user, err := service.users.FindByResetPasswordToken(ctx, digest)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrPasswordResetTokenInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !security.ResetTokenMatches(rawToken, user.ResetPasswordToken) {
		return models.User{}, ErrPasswordResetTokenInvalid
	}
	if user.ResetPasswordSentAt == nil || service.now().Sub(*user.ResetPasswordSentAt) > PasswordResetTokenTTL {
		return models.User{}, ErrPasswordResetTokenExpired
	}

	verr := &ValidationError{}
	validateNewPassword(verr, password, confirmation)
	if err := verr.orNil(); err != nil {
		return models.User{}, err
	}

	encryptedPassword, err := HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdateByID(ctx, user.ID, map[string]any{
		"encrypted_password":     encryptedPassword,
		"reset_password_token":   "",
		"reset_password_sent_at": nil,
	}); err != nil {
		return models.User{}, fmt.Errorf("update password: %w", err)
	}

	user.EncryptedPassword = encryptedPassword
	user.ResetPasswordToken = ""
	user.ResetPasswordSentAt = nil
	service.logger.Info(ctx, "password reset completed", "user_id", user.ID)
	return user, nil
}
