package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("ORDER_CANCEL_WINDOW", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.OrderCancelWindow)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("ORDER_CANCEL_WINDOW", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.OrderCancelWindow)
}
