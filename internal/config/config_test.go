package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "HTTP_PORT", "STORE_DRIVER", "JWT_SECRET", "AUTH_REQUIRE_VERIFIED", "REQUEST_TIMEOUT_MS", "RPC_PORT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Zero(t, cfg.RPCPort)
	assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.AuthRequireVerified)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("AUTH_REQUIRE_VERIFIED", "true")
	t.Setenv("REQUEST_TIMEOUT_MS", "not-a-number")

	cfg := Load()
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, StoreDriverMongo, cfg.StoreDriver)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.True(t, cfg.AuthRequireVerified)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
