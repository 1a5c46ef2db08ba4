package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL_MINUTES", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	assert.NotEmpty(t, cfg.DBUrl)
	assert.Equal(t, "changeme", cfg.JWTSecret)
	assert.Equal(t, 60*24, cfg.TokenTTLMinutes)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("TOKEN_TTL_MINUTES", "30")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DBUrl)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, 30, cfg.TokenTTLMinutes)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoadIgnoresBadInt(t *testing.T) {
	t.Setenv("TOKEN_TTL_MINUTES", "not-a-number")

	cfg := Load()
	assert.Equal(t, 60*24, cfg.TokenTTLMinutes)
}

func TestAddr(t *testing.T) {
	cfg := &Config{ServerPort: "8081"}
	assert.Equal(t, ":8081", cfg.Addr())
}
