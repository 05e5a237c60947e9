package services

import (
	"context"
	"iter"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/models"
	"gorm.io/gorm"
)

type stubUserRepository struct {
	users     map[string]models.User
	accounts  *stubAccountRepository
	existsErr error
	createErr error
	created   int
}

func newStubUserRepository(accounts *stubAccountRepository) *stubUserRepository {
	return &stubUserRepository{users: make(map[string]models.User), accounts: accounts}
}

func (repo *stubUserRepository) FindByID(_ context.Context, userID string) (models.User, error) {
	user, ok := repo.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (repo *stubUserRepository) FindByNormalizedEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range repo.users {
		if strings.ToLower(strings.TrimSpace(user.Email)) == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *stubUserRepository) FindByAPIKey(_ context.Context, apiKey string) (models.User, error) {
	for _, user := range repo.users {
		if user.APIKey == apiKey {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *stubUserRepository) FindByResetPasswordToken(_ context.Context, tokenDigest string) (models.User, error) {
	for _, user := range repo.users {
		if tokenDigest != "" && user.ResetPasswordToken == tokenDigest {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (repo *stubUserRepository) ExistsByNormalizedEmail(_ context.Context, email string, excludeID string) (bool, error) {
	if repo.existsErr != nil {
		return false, repo.existsErr
	}
	for _, user := range repo.users {
		if user.ID != excludeID && strings.ToLower(strings.TrimSpace(user.Email)) == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *stubUserRepository) CreateWithAccount(_ context.Context, user *models.User, account *models.Account) error {
	if repo.createErr != nil {
		return repo.createErr
	}
	for _, existing := range repo.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return db.ErrDuplicateEmail
		}
	}
	if account != nil && repo.accounts != nil {
		repo.accounts.accounts[account.ID] = *account
	}
	repo.users[user.ID] = *user
	repo.created++
	return nil
}

func (repo *stubUserRepository) Save(_ context.Context, user *models.User) error {
	repo.users[user.ID] = *user
	return nil
}

func (repo *stubUserRepository) UpdateByID(_ context.Context, userID string, updates map[string]any) error {
	user, ok := repo.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "encrypted_password":
			user.EncryptedPassword = value.(string)
		case "reset_password_token":
			user.ResetPasswordToken = value.(string)
		case "reset_password_sent_at":
			user.ResetPasswordSentAt = optionalTime(value)
		case "remember_created_at":
			user.RememberCreatedAt = optionalTime(value)
		case "sign_in_count":
			user.SignInCount = value.(int)
		case "current_sign_in_at":
			user.CurrentSignInAt = optionalTime(value)
		case "last_sign_in_at":
			user.LastSignInAt = optionalTime(value)
		case "current_sign_in_ip":
			user.CurrentSignInIP = value.(string)
		case "last_sign_in_ip":
			user.LastSignInIP = value.(string)
		}
	}
	repo.users[userID] = user
	return nil
}

func (repo *stubUserRepository) CountByAccount(_ context.Context, accountID string) (int64, error) {
	var count int64
	for _, user := range repo.users {
		if user.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (repo *stubUserRepository) ListByAccount(_ context.Context, accountID string) ([]models.User, error) {
	users := make([]models.User, 0)
	for _, user := range repo.users {
		if user.AccountID == accountID {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (repo *stubUserRepository) Delete(_ context.Context, userID string) error {
	if _, ok := repo.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(repo.users, userID)
	return nil
}

func optionalTime(value any) *time.Time {
	switch typed := value.(type) {
	case time.Time:
		return &typed
	case *time.Time:
		return typed
	default:
		return nil
	}
}

type stubAccountRepository struct {
	accounts map[string]models.Account
}

func newStubAccountRepository() *stubAccountRepository {
	return &stubAccountRepository{accounts: make(map[string]models.Account)}
}

func (repo *stubAccountRepository) FindByID(_ context.Context, accountID string) (models.Account, error) {
	account, ok := repo.accounts[accountID]
	if !ok {
		return models.Account{}, gorm.ErrRecordNotFound
	}
	return account, nil
}

func (repo *stubAccountRepository) UpdatePlan(_ context.Context, accountID string, plan string) error {
	account, ok := repo.accounts[accountID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	account.Plan = plan
	repo.accounts[accountID] = account
	return nil
}

type stubPlanLimits map[string]map[string]int64

func (limits stubPlanLimits) Lookup(_ context.Context, plan string, resource string) (int64, error) {
	limit, ok := limits[plan][resource]
	if !ok {
		return 0, db.ErrPlanLimitNotFound
	}
	return limit, nil
}

func (limits stubPlanLimits) ListByPlan(_ context.Context, plan string) ([]models.PlanLimit, error) {
	rows := make([]models.PlanLimit, 0)
	for resource, limit := range limits[plan] {
		rows = append(rows, models.PlanLimit{Plan: plan, Resource: resource, Limit: limit})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Resource < rows[j].Resource })
	return rows, nil
}

func (limits stubPlanLimits) PlanExists(_ context.Context, plan string) (bool, error) {
	_, ok := limits[plan]
	return ok, nil
}

type stubCounter map[string]int64

func (counter stubCounter) Count(_ context.Context, userID string) (int64, error) {
	return counter[userID], nil
}

type stubProjects struct {
	projects []models.Project
	queries  int
}

func (store *stubProjects) Count(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, project := range store.projects {
		if project.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (store *stubProjects) UpdatedSince(_ context.Context, userID string, since time.Time) iter.Seq2[models.Project, error] {
	return func(yield func(models.Project, error) bool) {
		store.queries++
		for _, project := range store.projects {
			if project.UserID != userID || !project.UpdatedAt.After(since) {
				continue
			}
			if !yield(project, nil) {
				return
			}
		}
	}
}

type stubInvoices struct {
	invoices []models.Invoice
}

func (store *stubInvoices) Count(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, invoice := range store.invoices {
		if invoice.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (store *stubInvoices) SumTotal(_ context.Context, userID string) (float64, error) {
	var total float64
	for _, invoice := range store.invoices {
		if invoice.UserID == userID {
			total += invoice.Total
		}
	}
	return total, nil
}

func (store *stubInvoices) SumTotalBetween(_ context.Context, userID string, fromStart time.Time, toEnd time.Time) (float64, error) {
	var total float64
	for _, invoice := range store.invoices {
		if invoice.UserID == userID && !invoice.Date.Before(fromStart) && invoice.Date.Before(toEnd) {
			total += invoice.Total
		}
	}
	return total, nil
}

type stubUploads struct {
	uploads []models.Upload
}

func (store *stubUploads) Count(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, upload := range store.uploads {
		if upload.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (store *stubUploads) SumFileSize(_ context.Context, userID string) (int64, error) {
	var total int64
	for _, upload := range store.uploads {
		if upload.UserID == userID {
			total += upload.FileSize
		}
	}
	return total, nil
}

func (store *stubUploads) Find(_ context.Context, userID string, id uint) (models.Upload, error) {
	for _, upload := range store.uploads {
		if upload.UserID == userID && upload.ID == id {
			return upload, nil
		}
	}
	return models.Upload{}, gorm.ErrRecordNotFound
}

type stubMailer struct {
	email string
	token string
}

func (mailer *stubMailer) SendPasswordReset(_ context.Context, email string, token string) error {
	mailer.email = email
	mailer.token = token
	return nil
}

func validCreateInput() CreateUserInput {
	return CreateUserInput{
		Email:                "ada@example.com",
		Password:             "StrongPass1",
		PasswordConfirmation: "StrongPass1",
		FirstName:            "Ada",
		LastName:             "Lovelace",
		InviteCode:           "alpha",
	}
}

func newTestProvisioner() (*Provisioner, *stubUserRepository, *stubAccountRepository) {
	accounts := newStubAccountRepository()
	users := newStubUserRepository(accounts)
	provisioner := NewProvisioner(users, accounts, []string{"alpha", "beta"}, nil)
	return provisioner, users, accounts
}

func ptr[T any](value T) *T {
	return &value
}
