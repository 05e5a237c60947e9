package db

import (
	"github.com/terraincognita07/baseapp/internal/models"
	"gorm.io/gorm"
)

type Repositories struct {
	Users      *UserRepository
	Accounts   *AccountRepository
	PlanLimits *PlanLimitRepository
	Projects   *ProjectRepository
	Clients    *OwnedRepository[models.Client]
	Uploads    *UploadRepository
	Tasks      *OwnedRepository[models.Task]
	Invoices   *InvoiceRepository
	Issues     *OwnedRepository[models.Issue]
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Accounts:   NewAccountRepository(database),
		PlanLimits: NewPlanLimitRepository(database),
		Projects:   NewProjectRepository(database),
		Clients:    NewOwnedRepository[models.Client](database),
		Uploads:    NewUploadRepository(database),
		Tasks:      NewOwnedRepository[models.Task](database),
		Invoices:   NewInvoiceRepository(database),
		Issues:     NewOwnedRepository[models.Issue](database),
	}
}
