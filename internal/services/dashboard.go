package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/models"
)

type DashboardSummary struct {
	FullName           string            `json:"full_name"`
	Email              string            `json:"email"`
	Role               string            `json:"role"`
	Admin              bool              `json:"admin"`
	AccountOwner       bool              `json:"account_owner"`
	APIKey             string            `json:"api_key"`
	FirstLogin         bool              `json:"first_login"`
	ProjectCount       int64             `json:"project_count"`
	RecentProjects     []models.Project  `json:"recent_projects"`
	InvoiceTotal       float64           `json:"invoice_total"`
	Month              string            `json:"month"`
	InvoicedThisMonth  float64           `json:"invoiced_this_month"`
	UploadUsageBytes   int64             `json:"upload_usage_bytes"`
	UploadLimitBytes   int64             `json:"upload_limit_bytes"`
	UploadLimitReached bool              `json:"upload_limit_reached"`
	Entitlements       map[string]*int64 `json:"entitlements"`
}

// Summary gathers the dashboard figures for user. Entitlements without a plan
// row are reported as null.
func (service *UserService) Summary(ctx context.Context, user models.User) (DashboardSummary, error) {
	summary := DashboardSummary{
		FullName:         user.FullName(),
		Email:            user.Email,
		Role:             user.Role,
		Admin:            user.IsAdmin(),
		AccountOwner:     user.AccountOwner,
		APIKey:           user.APIKey,
		RecentProjects:   make([]models.Project, 0),
		UploadLimitBytes: service.uploadLimitBytes,
		Entitlements:     make(map[string]*int64, len(models.Entitlements())),
	}

	var err error
	if summary.FirstLogin, err = service.IsFirstLogin(ctx, user); err != nil {
		return DashboardSummary{}, err
	}
	if summary.ProjectCount, err = service.ProjectCount(ctx, user); err != nil {
		return DashboardSummary{}, fmt.Errorf("count projects: %w", err)
	}
	for project, err := range service.RecentProjects(ctx, user) {
		if err != nil {
			return DashboardSummary{}, fmt.Errorf("recent projects: %w", err)
		}
		summary.RecentProjects = append(summary.RecentProjects, project)
	}
	if summary.InvoiceTotal, err = service.InvoiceTotal(ctx, user); err != nil {
		return DashboardSummary{}, fmt.Errorf("invoice total: %w", err)
	}

	summary.Month = service.now().In(service.location).Format("2006-01")
	if summary.InvoicedThisMonth, err = service.InvoicedAmountForMonth(ctx, user, summary.Month); err != nil {
		return DashboardSummary{}, fmt.Errorf("invoiced this month: %w", err)
	}
	if summary.UploadUsageBytes, err = service.UploadUsage(ctx, user); err != nil {
		return DashboardSummary{}, fmt.Errorf("upload usage: %w", err)
	}
	summary.UploadLimitReached = summary.UploadUsageBytes > service.uploadLimitBytes

	for _, kind := range models.Entitlements() {
		limit, err := service.CheckEntitlement(ctx, user, kind)
		if errors.Is(err, db.ErrPlanLimitNotFound) {
			summary.Entitlements[string(kind)] = nil
			continue
		}
		if err != nil {
			return DashboardSummary{}, err
		}
		summary.Entitlements[string(kind)] = &limit
	}
	return summary, nil
}
