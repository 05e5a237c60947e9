package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/baseapp/internal/logging"
	"github.com/terraincognita07/baseapp/internal/models"
)

var (
	ErrAccountOwnerRequired = errors.New("account owner required")
	ErrAdminRequired        = errors.New("admin role required")
	ErrUnknownPlan          = errors.New("unknown plan")
	ErrAccountHasMembers    = errors.New("account still has other members")
)

type AccountMemberRepository interface {
	CountByAccount(ctx context.Context, accountID string) (int64, error)
	ListByAccount(ctx context.Context, accountID string) ([]models.User, error)
	Delete(ctx context.Context, userID string) error
}

type AccountPlanRepository interface {
	AccountLookup
	UpdatePlan(ctx context.Context, accountID string, plan string) error
}

type PlanCatalog interface {
	ListByPlan(ctx context.Context, plan string) ([]models.PlanLimit, error)
	PlanExists(ctx context.Context, plan string) (bool, error)
}

type AccountDetails struct {
	Account models.Account     `json:"account"`
	Limits  []models.PlanLimit `json:"limits"`
	Members []AccountMember    `json:"members"`
}

type AccountMember struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	AccountOwner bool   `json:"account_owner"`
}

type AccountService struct {
	members     AccountMemberRepository
	accounts    AccountPlanRepository
	plans       PlanCatalog
	provisioner *Provisioner
	logger      logging.Logger
}

func NewAccountService(members AccountMemberRepository, accounts AccountPlanRepository, plans PlanCatalog, provisioner *Provisioner, logger logging.Logger) *AccountService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &AccountService{
		members:     members,
		accounts:    accounts,
		plans:       plans,
		provisioner: provisioner,
		logger:      logger,
	}
}

func (service *AccountService) Details(ctx context.Context, user models.User) (AccountDetails, error) {
	account, err := service.accounts.FindByID(ctx, user.AccountID)
	if err != nil {
		return AccountDetails{}, fmt.Errorf("load account: %w", err)
	}
	limits, err := service.plans.ListByPlan(ctx, account.Plan)
	if err != nil {
		return AccountDetails{}, fmt.Errorf("list plan limits: %w", err)
	}
	users, err := service.members.ListByAccount(ctx, account.ID)
	if err != nil {
		return AccountDetails{}, fmt.Errorf("list members: %w", err)
	}

	members := make([]AccountMember, 0, len(users))
	for _, member := range users {
		members = append(members, AccountMember{
			ID:           member.ID,
			Email:        member.Email,
			FullName:     member.FullName(),
			Role:         member.Role,
			AccountOwner: member.AccountOwner,
		})
	}
	return AccountDetails{Account: account, Limits: limits, Members: members}, nil
}

// AddMember provisions a user into the admin's own account. Unlike Create
// called directly, the role must be one of the defined roles.
func (service *AccountService) AddMember(ctx context.Context, admin models.User, input CreateUserInput) (*models.User, error) {
	if !admin.IsAdmin() {
		return nil, ErrAdminRequired
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = string(models.RoleCollaborator)
	}
	if _, ok := models.ParseRole(role); !ok {
		verr := &ValidationError{}
		verr.Add("role", msgInvalid)
		return nil, verr
	}

	input.Role = role
	input.AccountID = admin.AccountID
	return service.provisioner.Create(ctx, input)
}

func (service *AccountService) ChangePlan(ctx context.Context, user models.User, plan string) (models.Account, error) {
	if !user.AccountOwner {
		return models.Account{}, ErrAccountOwnerRequired
	}

	plan = strings.ToLower(strings.TrimSpace(plan))
	exists, err := service.plans.PlanExists(ctx, plan)
	if err != nil {
		return models.Account{}, fmt.Errorf("check plan: %w", err)
	}
	if plan == "" || !exists {
		return models.Account{}, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}

	if err := service.accounts.UpdatePlan(ctx, user.AccountID, plan); err != nil {
		return models.Account{}, fmt.Errorf("update plan: %w", err)
	}
	service.logger.Info(ctx, "account plan changed", "account_id", user.AccountID, "plan", plan)
	return service.accounts.FindByID(ctx, user.AccountID)
}

// DeleteUser removes user and everything it owns. An owner must be the last
// member of the account.
func (service *AccountService) DeleteUser(ctx context.Context, user models.User) error {
	if user.AccountOwner {
		count, err := service.members.CountByAccount(ctx, user.AccountID)
		if err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		if count > 1 {
			return ErrAccountHasMembers
		}
	}
	if err := service.members.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	service.logger.Info(ctx, "user deleted", "user_id", user.ID, "account_id", user.AccountID)
	return nil
}
