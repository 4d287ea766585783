package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, 24, cfg.JWT.SessionTTLHours)
	require.Equal(t, 168, cfg.JWT.ExtendedTTLHours)
	require.Equal(t, 24, cfg.JWT.VerificationTTLHours)
	require.Equal(t, 587, cfg.SMTP.Port)
	require.Equal(t, "portal", cfg.Metrics.Prefix)

	require.Equal(t, 24*time.Hour, cfg.JWT.SessionTTL())
	require.Equal(t, 168*time.Hour, cfg.JWT.ExtendedTTL())
	require.Equal(t, 24*time.Hour, cfg.JWT.VerificationTTL())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("SESSION_SIGNING_KEY", "env-session-key")
	t.Setenv("VERIFICATION_SIGNING_KEY", "env-verify-key")
	t.Setenv("SESSION_EXTENDED_TTL_HOURS", "72")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9999", cfg.Server.Port)
	require.Equal(t, "env-session-key", cfg.JWT.SessionSigningKey)
	require.Equal(t, "env-verify-key", cfg.JWT.VerificationSigningKey)
	require.Equal(t, 72*time.Hour, cfg.JWT.ExtendedTTL())
	require.Equal(t, 2525, cfg.SMTP.Port)
	require.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
}

func TestDSN(t *testing.T) {
	cfg := DBConfig{
		Host: "db", Port: "5432", User: "u", Password: "p",
		DBName: "portal", SSLMode: "disable",
	}
	require.Equal(t,
		"host=db port=5432 user=u password=p dbname=portal sslmode=disable",
		cfg.GetDSN())
}
