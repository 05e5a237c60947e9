package models

import (
	"strings"
	"time"
)

// Role is one of the fixed authorization roles a user can hold.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleClient       Role = "client"
	RoleCollaborator Role = "collaborator"
)

// Roles lists every defined role in declaration order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleClient, RoleCollaborator}
}

// ParseRole matches raw against the defined roles exactly.
func ParseRole(raw string) (Role, bool) {
	for _, role := range Roles() {
		if string(role) == raw {
			return role, true
		}
	}
	return "", false
}

type User struct {
	ID                string `gorm:"primaryKey;type:text"`
	AccountID         string `gorm:"type:text;not null;index"`
	Email             string `gorm:"not null"`
	EncryptedPassword string `gorm:"not null"`
	FirstName         string `gorm:"not null"`
	LastName          string `gorm:"not null"`
	AvatarURL         string
	Role              string `gorm:"not null;default:admin"`
	AccountOwner      bool   `gorm:"not null;default:false"`
	APIKey            string `gorm:"column:api_key;not null;index"`
	InviteCode        string

	ResetPasswordToken  string
	ResetPasswordSentAt *time.Time
	RememberCreatedAt   *time.Time
	SignInCount         int `gorm:"not null;default:0"`
	CurrentSignInAt     *time.Time
	LastSignInAt        *time.Time
	CurrentSignInIP     string `gorm:"column:current_sign_in_ip"`
	LastSignInIP        string `gorm:"column:last_sign_in_ip"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name with a single space, even when either is empty.
func (user User) FullName() string {
	return user.FirstName + " " + user.LastName
}

// IsRole reports an exact, case-sensitive role match.
func (user User) IsRole(role Role) bool {
	return user.Role == string(role)
}

// IsAdmin compares case-insensitively, unlike IsRole.
func (user User) IsAdmin() bool {
	return strings.ToLower(user.Role) == string(RoleAdmin)
}

func (user User) IsClient() bool {
	return user.IsRole(RoleClient)
}

func (user User) IsCollaborator() bool {
	return user.IsRole(RoleCollaborator)
}
