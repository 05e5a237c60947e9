package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "INVITE_CODES", "UPLOAD_LIMIT_BYTES", "RECENT_PROJECTS_WINDOW", "SHARE_LINK_TTL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/baseapp.db", cfg.DBPath)
	assert.Equal(t, int64(11000000), cfg.UploadLimitBytes)
	assert.Equal(t, 14*24*time.Hour, cfg.RecentProjectsWindow)
	assert.Equal(t, 15*time.Minute, cfg.S3.ShareLinkTTL)
	assert.Empty(t, cfg.InviteCodes)
}

func TestLoad_InviteCodesAreTrimmedAndDeduplicated(t *testing.T) {
	t.Setenv("INVITE_CODES", " alpha ,beta,,alpha, gamma")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, cfg.InviteCodes)
}

func TestValidate(t *testing.T) {
	valid := Config{
		SecretKey:        "0123456789abcdef0123456789abcdef",
		InviteCodes:      []string{"alpha"},
		UploadLimitBytes: 1,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(cfg *Config)
		want   error
	}{
		{name: "missing secret", mutate: func(cfg *Config) { cfg.SecretKey = "" }, want: ErrSecretKeyMissing},
		{name: "placeholder secret", mutate: func(cfg *Config) { cfg.SecretKey = "change_me_in_production" }, want: ErrSecretKeyInsecure},
		{name: "short secret", mutate: func(cfg *Config) { cfg.SecretKey = "too-short" }, want: ErrSecretKeyTooShort},
		{name: "no invite codes", mutate: func(cfg *Config) { cfg.InviteCodes = nil }, want: ErrInviteCodesMissing},
		{name: "zero upload limit", mutate: func(cfg *Config) { cfg.UploadLimitBytes = 0 }, want: ErrUploadLimitInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := Config{Timezone: "Not/AZone"}
	location, ok := cfg.Location()
	assert.False(t, ok)
	assert.Equal(t, time.UTC, location)
}
