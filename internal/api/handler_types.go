package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/baseapp/internal/models"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
	resetAttemptsLimit  = 5
	resetAttemptsWindow = time.Hour
)

type authClaims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type registrationInput struct {
	Email                string `json:"email" form:"email"`
	Password             string `json:"password" form:"password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
	FirstName            string `json:"first_name" form:"first_name"`
	LastName             string `json:"last_name" form:"last_name"`
	AvatarURL            string `json:"avatar_url" form:"avatar_url"`
	InviteCode           string `json:"invite_code" form:"invite_code"`
	Role                 string `json:"role" form:"role"`
}

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type profileInput struct {
	FirstName            *string `json:"first_name" form:"first_name"`
	LastName             *string `json:"last_name" form:"last_name"`
	Email                *string `json:"email" form:"email"`
	AvatarURL            *string `json:"avatar_url" form:"avatar_url"`
	InviteCode           *string `json:"invite_code" form:"invite_code"`
	CurrentPassword      string  `json:"current_password" form:"current_password"`
	Password             *string `json:"password" form:"password"`
	PasswordConfirmation *string `json:"password_confirmation" form:"password_confirmation"`
}

type forgotPasswordInput struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordInput struct {
	ResetPasswordToken   string `json:"reset_password_token" form:"reset_password_token"`
	Password             string `json:"password" form:"password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
}

type changePlanInput struct {
	Plan string `json:"plan" form:"plan"`
}

// userView is the public shape of a user; credentials and reset state stay out.
type userView struct {
	ID           string     `json:"id"`
	AccountID    string     `json:"account_id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	FullName     string     `json:"full_name"`
	AvatarURL    string     `json:"avatar_url"`
	Role         string     `json:"role"`
	AccountOwner bool       `json:"account_owner"`
	APIKey       string     `json:"api_key"`
	SignInCount  int        `json:"sign_in_count"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func newUserView(user *models.User) userView {
	return userView{
		ID:           user.ID,
		AccountID:    user.AccountID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		FullName:     user.FullName(),
		AvatarURL:    user.AvatarURL,
		Role:         user.Role,
		AccountOwner: user.AccountOwner,
		APIKey:       user.APIKey,
		SignInCount:  user.SignInCount,
		LastSignInAt: user.LastSignInAt,
		CreatedAt:    user.CreatedAt,
	}
}
