package api

import (
	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/models"
	"github.com/terraincognita07/baseapp/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, cfg HandlerConfig) *Handler {
	repositories := db.NewRepositories(database)
	handler.repositories = repositories

	handler.provisioner = services.NewProvisioner(repositories.Users, repositories.Accounts, cfg.InviteCodes, handler.logger)
	handler.authService = services.NewAuthService(repositories.Users, cfg.Mailer, handler.logger)
	handler.userService = services.NewUserService(services.UserStores{
		Accounts:   repositories.Accounts,
		PlanLimits: repositories.PlanLimits,
		Projects:   repositories.Projects,
		Clients:    repositories.Clients,
		Tasks:      repositories.Tasks,
		Invoices:   repositories.Invoices,
		Uploads:    repositories.Uploads,
	}, cfg.UploadLimitBytes, cfg.RecentProjectsWindow, cfg.Location)
	handler.accountService = services.NewAccountService(repositories.Users, repositories.Accounts, repositories.PlanLimits, handler.provisioner, handler.logger)
	handler.shareService = services.NewUploadShareService(repositories.Uploads, cfg.Presigner, cfg.ShareLinkTTL)

	insights := handler.userService
	handler.projects = services.NewResourceService[models.Project](repositories.Projects,
		insights.CountGuard(models.EntitlementProjects, repositories.Projects))
	handler.invoices = services.NewResourceService[models.Invoice](repositories.Invoices,
		insights.CountGuard(models.EntitlementInvoices, repositories.Invoices))
	handler.uploads = services.NewResourceService[models.Upload](repositories.Uploads, services.ChainGuards(
		insights.UploadSizeGuard(),
		insights.CountGuard(models.EntitlementUploads, repositories.Uploads),
	))
	handler.clients = services.NewResourceService[models.Client](repositories.Clients, nil)
	handler.tasks = services.NewResourceService[models.Task](repositories.Tasks, nil)
	handler.issues = services.NewResourceService[models.Issue](repositories.Issues, nil)
	return handler
}
