package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/baseapp/internal/api"
	"github.com/terraincognita07/baseapp/internal/db"
	"github.com/terraincognita07/baseapp/internal/services"
	"github.com/terraincognita07/baseapp/internal/storage"
)

const (
	shutdownGrace = 10 * time.Second
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, appLogger, err := loadRuntime()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	port, err := resolvePort(cfg.Port)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	location, ok := cfg.Location()
	if !ok {
		appLogger.Warn(ctx, "invalid TZ, falling back to UTC", "tz", cfg.Timezone)
	}
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath, appLogger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, api.HandlerConfig{
		SecretKey:            cfg.SecretKey,
		Location:             location,
		CookieSecure:         cfg.CookieSecure,
		InviteCodes:          cfg.InviteCodes,
		UploadLimitBytes:     cfg.UploadLimitBytes,
		RecentProjectsWindow: cfg.RecentProjectsWindow,
		ShareLinkTTL:         cfg.S3.ShareLinkTTL,
		Presigner:            storage.NewS3Sharer(cfg.S3),
		Mailer:               services.NewLogMailer(appLogger),
		Logger:               appLogger,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "baseapp",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(csrf.New(api.CSRFConfig(cfg.CookieSecure)))
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, "server shutdown failed", "error", err)
		}
	}()

	appLogger.Info(ctx, "baseapp listening", "port", port, "db", cfg.DBPath, "tz", location.String())
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil {
		return "", fmt.Errorf("invalid PORT %q: %w", port, err)
	}
	if value < 1 || value > 65535 {
		return "", errors.New("PORT must be between 1 and 65535")
	}
	return port, nil
}
