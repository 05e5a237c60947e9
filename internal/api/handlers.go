package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/logging"
	"github.com/terraincognita07/baseapp/internal/models"
	"github.com/terraincognita07/baseapp/internal/services"
	"gorm.io/gorm"
)

// HandlerConfig carries the runtime settings the HTTP layer hands down to the
// services it builds.
type HandlerConfig struct {
	SecretKey            string
	Location             *time.Location
	CookieSecure         bool
	InviteCodes          []string
	UploadLimitBytes     int64
	RecentProjectsWindow time.Duration
	ShareLinkTTL         time.Duration
	Presigner            services.Presigner
	Mailer               services.Mailer
	Logger               logging.Logger
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	logger       logging.Logger
	cookieCodec  *secureCookieCodec
	loginLimiter *attemptLimiter
	resetLimiter *attemptLimiter

	repositories   *db.Repositories
	provisioner    *services.Provisioner
	authService    *services.AuthService
	userService    *services.UserService
	accountService *services.AccountService
	shareService   *services.UploadShareService

	projects *services.ResourceService[models.Project, *models.Project]
	clients  *services.ResourceService[models.Client, *models.Client]
	uploads  *services.ResourceService[models.Upload, *models.Upload]
	tasks    *services.ResourceService[models.Task, *models.Task]
	invoices *services.ResourceService[models.Invoice, *models.Invoice]
	issues   *services.ResourceService[models.Issue, *models.Issue]
}

func NewHandler(database *gorm.DB, cfg HandlerConfig) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	codec, err := newSecureCookieCodec([]byte(cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(cfg.SecretKey),
		cookieSecure: cfg.CookieSecure,
		logger:       cfg.Logger,
		cookieCodec:  codec,
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		resetLimiter: newAttemptLimiter(resetAttemptsLimit, resetAttemptsWindow),
	}
	return handler.withDependencies(database, cfg), nil
}
