package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     int
	LogLevel string
	DataDir  string

	AuthSecret string

	StreamPotKey     string
	StreamPotBaseURL string

	PollInterval time.Duration
	RenderBudget time.Duration

	RateLimitQuota  int
	RateLimitWindow time.Duration

	// Optional: shared rate limit state. Empty RedisAddr means in-memory.
	RedisAddr     string
	RedisUsername string
	RedisPassword string

	// Optional: durable re-hosting of rendered previews. Empty
	// SupabaseURL means engine URLs are returned as-is.
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string
}

func Load() (*Config, error) {
	// .env is a development convenience; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	pollIntervalMS, err := strconv.Atoi(getEnv("POLL_INTERVAL_MS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL_MS: %w", err)
	}

	renderBudgetS, err := strconv.Atoi(getEnv("RENDER_BUDGET_SECONDS", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid RENDER_BUDGET_SECONDS: %w", err)
	}

	quota, err := strconv.Atoi(getEnv("RATE_LIMIT_QUOTA", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_QUOTA: %w", err)
	}

	windowHours, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_HOURS", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_HOURS: %w", err)
	}

	authSecret := os.Getenv("AUTH_SECRET")
	if authSecret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required")
	}

	streamPotKey := os.Getenv("STREAMPOT_API_KEY")
	if streamPotKey == "" {
		return nil, fmt.Errorf("STREAMPOT_API_KEY is required")
	}

	return &Config{
		Port:     port,
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DataDir:  getEnv("DATA_DIR", "/data"),

		AuthSecret: authSecret,

		StreamPotKey:     streamPotKey,
		StreamPotBaseURL: getEnv("STREAMPOT_BASE_URL", ""),

		PollInterval: time.Duration(pollIntervalMS) * time.Millisecond,
		RenderBudget: time.Duration(renderBudgetS) * time.Second,

		RateLimitQuota:  quota,
		RateLimitWindow: time.Duration(windowHours) * time.Hour,

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseBucket:     getEnv("SUPABASE_BUCKET", "previews"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
