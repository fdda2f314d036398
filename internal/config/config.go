package config

import (
	"os"
	"strings"
)

// Config carries all server settings, read from the environment.
type Config struct {
	Port           string
	Env            string
	UseMemoryStore bool
	SkipAuth       bool
	ProjectID      string
	AllowedOrigins []string

	// SchedulerSecret authorizes the job endpoints when called without a
	// user token; empty disables that path.
	SchedulerSecret string

	// Cron schedules for the background jobs; standard cron expressions.
	RecurringSchedule string
	DigestSchedule    string
}

// Load reads configuration from environment variables with local-friendly
// defaults.
func Load() *Config {
	cfg := &Config{
		Port:              getenv("PORT", "8111"),
		Env:               getenv("ENV", "local"),
		ProjectID:         os.Getenv("GOOGLE_CLOUD_PROJECT"),
		SchedulerSecret:   os.Getenv("SCHEDULER_SECRET"),
		RecurringSchedule: getenv("RECURRING_CRON", "0 2 * * *"),
		DigestSchedule:    getenv("DIGEST_CRON", "0 8 * * 1"),
	}
	cfg.UseMemoryStore = os.Getenv("USE_MEMORY_STORE") == "true" || cfg.Env == "local"
	cfg.SkipAuth = os.Getenv("SKIP_AUTH") == "true"

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{
			"http://localhost:1234",
			"http://127.0.0.1:1234",
		}
	}
	return cfg
}

func (c *Config) IsLocal() bool {
	return c.Env == "local"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
