package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend.local/api")
	t.Setenv("SESSION_TTL", "90")
	t.Setenv("MAX_PAGE_SIZE", "oops")

	cfg := New()

	assert.Equal(t, "http://backend.local/api", cfg.API.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.JWT.SessionTTL)
	assert.Equal(t, 100, cfg.List.MaxPageSize, "некорректное значение заменяется значением по умолчанию")
	assert.Equal(t, 20, cfg.List.DefaultPageSize)
	assert.Equal(t, time.Minute, cfg.Dashboard.CountTTL)
}

func TestGetDuration(t *testing.T) {
	t.Setenv("X_TIMEOUT", "1m30s")
	assert.Equal(t, 90*time.Second, getDuration("X_TIMEOUT", time.Second))

	t.Setenv("X_TIMEOUT", "-5")
	assert.Equal(t, time.Second, getDuration("X_TIMEOUT", time.Second))
}

func TestGetBool(t *testing.T) {
	t.Setenv("X_SECURE", "true")
	assert.True(t, getBool("X_SECURE", false))

	t.Setenv("X_SECURE", "maybe")
	assert.False(t, getBool("X_SECURE", false))
}
