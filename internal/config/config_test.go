package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "USE_MEMORY_STORE", "SKIP_AUTH", "CORS_ALLOWED_ORIGINS", "SCHEDULER_SECRET", "RECURRING_CRON", "DIGEST_CRON"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8111", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.True(t, cfg.IsLocal())
	assert.True(t, cfg.UseMemoryStore, "local defaults to the memory store")
	assert.False(t, cfg.SkipAuth)
	assert.Equal(t, "0 2 * * *", cfg.RecurringSchedule)
	assert.Equal(t, "0 8 * * 1", cfg.DigestSchedule)
	assert.Contains(t, cfg.AllowedOrigins, "http://localhost:1234")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("USE_MEMORY_STORE", "")
	t.Setenv("SKIP_AUTH", "true")
	t.Setenv("SCHEDULER_SECRET", "hunter2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com,")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsLocal())
	assert.False(t, cfg.UseMemoryStore, "production without the flag uses Firestore")
	assert.True(t, cfg.SkipAuth)
	assert.Equal(t, "hunter2", cfg.SchedulerSecret)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestMemoryStoreFlagOverridesEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("USE_MEMORY_STORE", "true")

	cfg := Load()
	assert.True(t, cfg.UseMemoryStore)
}
