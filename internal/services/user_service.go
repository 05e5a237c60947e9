package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/models"
)

const (
	DefaultUploadLimitBytes     int64 = 11000000
	DefaultRecentProjectsWindow       = 14 * 24 * time.Hour
)

var (
	ErrInvalidMonthLabel   = errors.New("invalid month label")
	ErrUnknownEntitlement  = errors.New("unknown entitlement")
	ErrEntitlementExceeded = errors.New("plan limit reached")
	ErrUploadLimitReached  = errors.New("upload size limit reached")
)

var monthLabelLayouts = []string{
	"2006-01",
	"2006-01-02",
	"January 2006",
	"Jan 2006",
	"01/2006",
}

type OwnedCounter interface {
	Count(ctx context.Context, userID string) (int64, error)
}

type RecentProjectSource interface {
	OwnedCounter
	UpdatedSince(ctx context.Context, userID string, since time.Time) iter.Seq2[models.Project, error]
}

type InvoiceTotals interface {
	OwnedCounter
	SumTotal(ctx context.Context, userID string) (float64, error)
	SumTotalBetween(ctx context.Context, userID string, fromStart time.Time, toEnd time.Time) (float64, error)
}

type UploadSizer interface {
	OwnedCounter
	SumFileSize(ctx context.Context, userID string) (int64, error)
}

type PlanLimitLookup interface {
	Lookup(ctx context.Context, plan string, resource string) (int64, error)
}

// UserStores groups the read sides UserService aggregates over.
type UserStores struct {
	Accounts   AccountLookup
	PlanLimits PlanLimitLookup
	Projects   RecentProjectSource
	Clients    OwnedCounter
	Tasks      OwnedCounter
	Invoices   InvoiceTotals
	Uploads    UploadSizer
}

// UserService answers derived questions about a user: counts, totals, upload
// usage and plan entitlements.
type UserService struct {
	stores           UserStores
	uploadLimitBytes int64
	recentWindow     time.Duration
	location         *time.Location
	now              func() time.Time
}

// NewUserService builds the service. location decides which calendar month
// the dashboard treats as current; nil means UTC.
func NewUserService(stores UserStores, uploadLimitBytes int64, recentWindow time.Duration, location *time.Location) *UserService {
	if uploadLimitBytes <= 0 {
		uploadLimitBytes = DefaultUploadLimitBytes
	}
	if recentWindow <= 0 {
		recentWindow = DefaultRecentProjectsWindow
	}
	if location == nil {
		location = time.UTC
	}
	return &UserService{
		stores:           stores,
		uploadLimitBytes: uploadLimitBytes,
		recentWindow:     recentWindow,
		location:         location,
		now:              time.Now,
	}
}

// IsFirstLogin is true when sign-ins and owned projects, clients and tasks add
// up to exactly one: the first sign-in of a user who owns nothing yet.
func (service *UserService) IsFirstLogin(ctx context.Context, user models.User) (bool, error) {
	total := int64(user.SignInCount)
	for name, counter := range map[string]OwnedCounter{
		"projects": service.stores.Projects,
		"clients":  service.stores.Clients,
		"tasks":    service.stores.Tasks,
	} {
		count, err := counter.Count(ctx, user.ID)
		if err != nil {
			return false, fmt.Errorf("count %s: %w", name, err)
		}
		total += count
	}
	return total == 1, nil
}

func (service *UserService) ProjectCount(ctx context.Context, user models.User) (int64, error) {
	return service.stores.Projects.Count(ctx, user.ID)
}

// RecentProjects yields projects updated within the recent window. The cutoff
// is taken when ranging starts, so every range sees a fresh query.
func (service *UserService) RecentProjects(ctx context.Context, user models.User) iter.Seq2[models.Project, error] {
	return func(yield func(models.Project, error) bool) {
		since := service.now().Add(-service.recentWindow)
		for project, err := range service.stores.Projects.UpdatedSince(ctx, user.ID, since) {
			if !yield(project, err) {
				return
			}
		}
	}
}

func (service *UserService) InvoiceTotal(ctx context.Context, user models.User) (float64, error) {
	return service.stores.Invoices.SumTotal(ctx, user.ID)
}

// InvoicedAmountForMonth sums invoices dated from the first through the last
// day of the month named by label.
func (service *UserService) InvoicedAmountForMonth(ctx context.Context, user models.User, label string) (float64, error) {
	monthStart, err := ParseMonthLabel(label)
	if err != nil {
		return 0, err
	}
	return service.stores.Invoices.SumTotalBetween(ctx, user.ID, monthStart, monthStart.AddDate(0, 1, 0))
}

// ParseMonthLabel returns midnight UTC on the first day of the labelled month.
func ParseMonthLabel(label string) (time.Time, error) {
	trimmed := strings.TrimSpace(label)
	for _, layout := range monthLabelLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonthLabel, label)
}

func (service *UserService) UploadUsage(ctx context.Context, user models.User) (int64, error) {
	return service.stores.Uploads.SumFileSize(ctx, user.ID)
}

// UploadLimitReached is true only once usage is strictly above the ceiling.
func (service *UserService) UploadLimitReached(ctx context.Context, user models.User) (bool, error) {
	usage, err := service.UploadUsage(ctx, user)
	if err != nil {
		return false, err
	}
	return usage > service.uploadLimitBytes, nil
}

// CheckEntitlement returns the settings value for (account plan, kind)
// unchanged. A missing row surfaces as db.ErrPlanLimitNotFound.
func (service *UserService) CheckEntitlement(ctx context.Context, user models.User, kind models.Entitlement) (int64, error) {
	if !isKnownEntitlement(kind) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEntitlement, kind)
	}
	account, err := service.stores.Accounts.FindByID(ctx, user.AccountID)
	if err != nil {
		return 0, fmt.Errorf("load account: %w", err)
	}
	limit, err := service.stores.PlanLimits.Lookup(ctx, account.Plan, string(kind))
	if err != nil {
		return 0, fmt.Errorf("lookup %s limit for plan %q: %w", kind, account.Plan, err)
	}
	return limit, nil
}

func (service *UserService) UploadLimit(ctx context.Context, user models.User) (int64, error) {
	return service.CheckEntitlement(ctx, user, models.EntitlementUploads)
}

func (service *UserService) InvoiceLimit(ctx context.Context, user models.User) (int64, error) {
	return service.CheckEntitlement(ctx, user, models.EntitlementInvoices)
}

func (service *UserService) ProjectLimit(ctx context.Context, user models.User) (int64, error) {
	return service.CheckEntitlement(ctx, user, models.EntitlementProjects)
}

// CountGuard refuses creation once counter has reached the plan limit for
// kind. A plan without a row for kind is unlimited.
func (service *UserService) CountGuard(kind models.Entitlement, counter OwnedCounter) CreateGuard {
	return func(ctx context.Context, user models.User) error {
		limit, err := service.CheckEntitlement(ctx, user, kind)
		if errors.Is(err, db.ErrPlanLimitNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		count, err := counter.Count(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("count %s: %w", kind, err)
		}
		if count >= limit {
			return fmt.Errorf("%w: %s (%d)", ErrEntitlementExceeded, kind, limit)
		}
		return nil
	}
}

// UploadSizeGuard refuses new uploads while the size ceiling is exceeded.
func (service *UserService) UploadSizeGuard() CreateGuard {
	return func(ctx context.Context, user models.User) error {
		reached, err := service.UploadLimitReached(ctx, user)
		if err != nil {
			return err
		}
		if reached {
			return ErrUploadLimitReached
		}
		return nil
	}
}

func isKnownEntitlement(kind models.Entitlement) bool {
	for _, known := range models.Entitlements() {
		if known == kind {
			return true
		}
	}
	return false
}
