package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the tournament engine's ambient layer needs.
// Loaded once at startup the same way the teacher's config.Load() does.
type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Match lifecycle (spec §4.4, §4.6, SPEC_FULL.md §6)
	PreparationCountdownSecs  int
	AutoPassDeadlineSecs      int
	DisconnectGracePeriodSecs int
	WaitingExpiryMinutes      int
	HousekeepingIntervalSecs  int

	// Security
	JWTSecret            string
	ReconnectTokenTTLMin int
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/matatu_engine?sslmode=disable"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		PreparationCountdownSecs:  getEnvInt("PREPARATION_COUNTDOWN_SECONDS", 30),
		AutoPassDeadlineSecs:      getEnvInt("AUTO_PASS_DEADLINE_SECONDS", 5),
		DisconnectGracePeriodSecs: getEnvInt("DISCONNECT_GRACE_PERIOD_SECONDS", 120),
		WaitingExpiryMinutes:      getEnvInt("WAITING_EXPIRY_MINUTES", 10),
		HousekeepingIntervalSecs:  getEnvInt("HOUSEKEEPING_INTERVAL_SECONDS", 15),

		JWTSecret:            getEnv("JWT_SECRET", "change-me-in-production"),
		ReconnectTokenTTLMin: getEnvInt("RECONNECT_TOKEN_TTL_MINUTES", 60),
	}
}

// PreparationCountdown is cfg.PreparationCountdownSecs as a time.Duration.
func (c *Config) PreparationCountdown() time.Duration {
	return time.Duration(c.PreparationCountdownSecs) * time.Second
}

func (c *Config) AutoPassDeadline() time.Duration {
	return time.Duration(c.AutoPassDeadlineSecs) * time.Second
}

func (c *Config) DisconnectGrace() time.Duration {
	return time.Duration(c.DisconnectGracePeriodSecs) * time.Second
}

func (c *Config) HousekeepingInterval() time.Duration {
	return time.Duration(c.HousekeepingIntervalSecs) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
