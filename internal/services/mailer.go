package services

import (
	"context"

	"github.com/terraincognita07/baseapp/internal/logging"
)

// Mailer delivers password reset instructions.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email string, token string) error
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LogMailer{logger: logger}
}

func (mailer *LogMailer) SendPasswordReset(ctx context.Context, email string, token string) error {
	mailer.logger.Info(ctx, "password reset instructions", "email", email, "reset_password_token", token)
	return nil
}
