package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "realestate", cfg.MongoDB)
	assert.Equal(t, "devsecret", cfg.JWTSecret)
	assert.Equal(t, "ping", cfg.PingMessage)
	assert.Equal(t, "https://api.razorpay.com", cfg.Razorpay.BaseURL)
	assert.Empty(t, cfg.Razorpay.KeyID)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "marketplace")
	t.Setenv("JWT_SECRET", "prodsecret")
	t.Setenv("PING_MESSAGE", "pong")
	t.Setenv("RAZORPAY_KEY_ID", "key_live_1")
	t.Setenv("RAZORPAY_KEY_SECRET", "s3cret")
	t.Setenv("RAZORPAY_BASE_URL", "http://localhost:4010")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "marketplace", cfg.MongoDB)
	assert.Equal(t, "prodsecret", cfg.JWTSecret)
	assert.Equal(t, "pong", cfg.PingMessage)
	assert.Equal(t, "key_live_1", cfg.Razorpay.KeyID)
	assert.Equal(t, "s3cret", cfg.Razorpay.KeySecret)
	assert.Equal(t, "http://localhost:4010", cfg.Razorpay.BaseURL)
}
