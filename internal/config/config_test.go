package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("S3_BUCKET", "")

	cfg := Load()

	assert.Equal(t, "Taskflow", cfg.AppName)
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.StorageEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("APP_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("S3_BUCKET", "exports")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.True(t, cfg.StorageEnabled())
}

func TestLoadTool(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_CONNECTION", "postgres://localhost/taskflow")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg := LoadTool()
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/taskflow", cfg.DBConnection)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("TEST_BOOL", "maybe")
	t.Setenv("TEST_DURATION", "soon")

	assert.True(t, envBool("TEST_BOOL", true))
	assert.Equal(t, time.Minute, envDuration("TEST_DURATION", time.Minute))
	assert.Equal(t, "fallback", envString("TEST_UNSET_STRING", "fallback"))
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "UTC"}
	assert.Equal(t, time.UTC, cfg.Location())

	cfg = &Config{Timezone: "Europe/Berlin"}
	loc := cfg.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Europe/Berlin", loc.String())

	cfg = &Config{Timezone: "Mars/Olympus"}
	assert.Equal(t, time.Local, cfg.Location())
}
