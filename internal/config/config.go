package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // Containers may ship without a zoneinfo database

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName  string
	AppEnv   string
	AppURL   string
	Port     string
	Timezone string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret        string
	JWTExpiry        time.Duration
	RegistrationOpen bool // Self sign-up; schools may provision accounts instead

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Wellbeing engine
	ClimateMinimumSample int // Privacy floor for aggregate climate stats
	PatternWindowDays    int
	ProgressMaxRetries   int // Optimistic-concurrency attempts per progress update

	// Report storage (optional, S3-compatible)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PresignExpiry time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:  envString("APP_NAME", "Bienestar"),
		AppEnv:   envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:   envRequired("APP_URL"),
		Port:     envString("PORT", "8090"),
		Timezone: envString("APP_TIMEZONE", "America/Santiago"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/bienestar.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		// Security
		JWTSecret:        envRequired("JWT_SECRET"),
		JWTExpiry:        envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		RegistrationOpen: envBool("REGISTRATION_OPEN", true),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Wellbeing engine
		ClimateMinimumSample: envInt("CLIMATE_MIN_SAMPLE", 15),
		PatternWindowDays:    envInt("PATTERN_WINDOW_DAYS", 3),
		ProgressMaxRetries:   envInt("PROGRESS_MAX_RETRIES", 3),

		// Report storage (reports are disabled without a bucket)
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.ClimateMinimumSample < 5 {
		slog.Error("production deployment requires CLIMATE_MIN_SAMPLE >= 5", "value", cfg.ClimateMinimumSample)
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ReportsEnabled reports whether an object store is configured for climate reports.
func (c *Config) ReportsEnabled() bool {
	return c.S3Bucket != ""
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:  c.AppName,
		AppEnv:   c.AppEnv,
		AppURL:   c.AppURL,
		Port:     c.Port,
		Timezone: c.Timezone,

		EmailFrom: c.EmailFrom,

		ClimateMinimumSample: c.ClimateMinimumSample,
		PatternWindowDays:    c.PatternWindowDays,
	}
}
