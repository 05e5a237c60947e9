// Package config loads runtime settings for the baseapp server and CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrSecretKeyMissing   = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure  = errors.New("SECRET_KEY uses an insecure placeholder")
	ErrSecretKeyTooShort  = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	ErrInviteCodesMissing = errors.New("INVITE_CODES must list at least one code")
	ErrUploadLimitInvalid = errors.New("UPLOAD_LIMIT_BYTES must be positive")
)

// Config holds every environment-driven setting.
type Config struct {
	Port         string `env:"PORT"          envDefault:"8080"`
	DBPath       string `env:"DB_PATH"       envDefault:"data/baseapp.db"`
	SecretKey    string `env:"SECRET_KEY"`
	Timezone     string `env:"TZ"            envDefault:"UTC"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	InviteCodes          []string      `env:"INVITE_CODES"           envSeparator:","`
	UploadLimitBytes     int64         `env:"UPLOAD_LIMIT_BYTES"     envDefault:"11000000"`
	RecentProjectsWindow time.Duration `env:"RECENT_PROJECTS_WINDOW" envDefault:"336h"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	S3 S3Config
}

// S3Config points share links at an S3-compatible bucket.
type S3Config struct {
	Bucket       string        `env:"S3_BUCKET"      envDefault:"baseapp-uploads"`
	Region       string        `env:"S3_REGION"      envDefault:"us-east-1"`
	Endpoint     string        `env:"S3_ENDPOINT"`
	AccessKey    string        `env:"S3_ACCESS_KEY"`
	SecretKey    string        `env:"S3_SECRET_KEY"`
	ShareLinkTTL time.Duration `env:"SHARE_LINK_TTL" envDefault:"15m"`
}

// Load parses the environment into a Config and normalizes list values.
// It does not validate; callers that need a runnable server call Validate.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.InviteCodes = normalizeInviteCodes(cfg.InviteCodes)
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	return cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (cfg *Config) Validate() error {
	var errs []error
	switch {
	case cfg.SecretKey == "":
		errs = append(errs, ErrSecretKeyMissing)
	case isInsecureSecretKey(cfg.SecretKey):
		errs = append(errs, ErrSecretKeyInsecure)
	case len(cfg.SecretKey) < minSecretKeyLength:
		errs = append(errs, ErrSecretKeyTooShort)
	}
	if len(cfg.InviteCodes) == 0 {
		errs = append(errs, ErrInviteCodesMissing)
	}
	if cfg.UploadLimitBytes <= 0 {
		errs = append(errs, ErrUploadLimitInvalid)
	}
	return errors.Join(errs...)
}

// Location resolves the configured timezone, falling back to UTC.
func (cfg *Config) Location() (*time.Location, bool) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC, false
	}
	return location, true
}

func isInsecureSecretKey(secret string) bool {
	_, insecure := insecureSecretKeys[strings.ToLower(secret)]
	return insecure
}

func normalizeInviteCodes(raw []string) []string {
	codes := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		code := strings.TrimSpace(value)
		if code == "" {
			continue
		}
		if _, exists := seen[code]; exists {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}
