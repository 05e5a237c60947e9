package models

import "time"

const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPremium = "premium"

	DefaultPlan = PlanFree
)

type Account struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `gorm:"not null;default:''" json:"name"`
	Plan      string    `gorm:"not null;default:free" json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entitlement names a plan-limited resource.
type Entitlement string

const (
	EntitlementUploads  Entitlement = "uploads"
	EntitlementInvoices Entitlement = "invoices"
	EntitlementProjects Entitlement = "projects"
)

func Entitlements() []Entitlement {
	return []Entitlement{EntitlementUploads, EntitlementInvoices, EntitlementProjects}
}

// PlanLimit is one row of the account settings table.
type PlanLimit struct {
	Plan     string `gorm:"primaryKey;type:text" json:"plan"`
	Resource string `gorm:"primaryKey;type:text" json:"resource"`
	Limit    int64  `gorm:"column:limit_value;not null" json:"limit"`
}
