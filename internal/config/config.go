package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// UI state backends
const (
	UIStateRedis  = "redis"
	UIStateMemory = "memory"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Registry backend
	BackendURL        string        `json:"backend_url"`
	BackendTimeout    time.Duration `json:"backend_timeout"`
	FamilyMembersPath string        `json:"family_members_path"`
	PropertyItemsPath string        `json:"property_items_path"`

	// Session configuration
	CookieSecure            bool          `json:"cookie_secure"`
	SessionTTL              time.Duration `json:"session_ttl"`
	SessionExpiredCountdown time.Duration `json:"session_expired_countdown"`

	// UI state configuration
	UIStateBackend string        `json:"ui_state_backend"`
	ListCacheTTL   time.Duration `json:"list_cache_ttl"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// MongoDB configuration (audit trail only, disabled when URI is empty)
	MongoURI             string `json:"mongo_uri"`
	MongoDatabase        string `json:"mongo_database"`
	MongoAuditCollection string `json:"mongo_audit_collection"`

	// Observability
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
	SentryDSN       string `json:"sentry_dsn"`

	// HTTP surface
	LoginRateLimit     int      `json:"login_rate_limit"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables, reading a
// local .env file first when present
func LoadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backendTimeout, err := time.ParseDuration(getEnvOrDefault("BACKEND_TIMEOUT", "30s"))
	if err != nil {
		return fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	countdown, err := time.ParseDuration(getEnvOrDefault("SESSION_EXPIRED_COUNTDOWN", "5s"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_EXPIRED_COUNTDOWN: %w", err)
	}

	listCacheTTL, err := time.ParseDuration(getEnvOrDefault("LIST_CACHE_TTL", "10m"))
	if err != nil {
		return fmt.Errorf("invalid LIST_CACHE_TTL: %w", err)
	}

	cookieSecure, err := strconv.ParseBool(getEnvOrDefault("COOKIE_SECURE", "true"))
	if err != nil {
		return fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	loginRateLimit, err := strconv.Atoi(getEnvOrDefault("LOGIN_RATE_LIMIT", "10"))
	if err != nil || loginRateLimit <= 0 {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT: must be a positive integer")
	}

	uiStateBackend := strings.ToLower(getEnvOrDefault("UI_STATE_BACKEND", UIStateRedis))
	if uiStateBackend != UIStateRedis && uiStateBackend != UIStateMemory {
		return fmt.Errorf("invalid UI_STATE_BACKEND %q: use %s or %s", uiStateBackend, UIStateRedis, UIStateMemory)
	}

	backendURL := strings.TrimRight(getEnvOrDefault("BACKEND_URL", "http://localhost:4000/api"), "/")
	if backendURL == "" {
		return fmt.Errorf("BACKEND_URL environment variable is required")
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// Registry backend
		BackendURL:        backendURL,
		BackendTimeout:    backendTimeout,
		FamilyMembersPath: getEnvOrDefault("FAMILY_MEMBERS_PATH", "/familyMembers"),
		PropertyItemsPath: getEnvOrDefault("PROPERTY_ITEMS_PATH", ""),

		// Session configuration
		CookieSecure:            cookieSecure,
		SessionTTL:              sessionTTL,
		SessionExpiredCountdown: countdown,

		// UI state configuration
		UIStateBackend: uiStateBackend,
		ListCacheTTL:   listCacheTTL,

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// MongoDB configuration
		MongoURI:             getEnvOrDefault("MONGODB_URI", ""),
		MongoDatabase:        getEnvOrDefault("MONGODB_DATABASE", "brotar_painel"),
		MongoAuditCollection: getEnvOrDefault("MONGODB_AUDIT_COLLECTION", "audit_logs"),

		// Observability
		TracingEnabled:  tracingEnabled,
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		SentryDSN:       getEnvOrDefault("SENTRY_DSN", ""),

		// HTTP surface
		LoginRateLimit:     loginRateLimit,
		CORSAllowedOrigins: parseCommaSeparatedList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
	}

	return nil
}

// IsProduction reports whether the panel runs in production
func (c *Config) IsProduction() bool {
	return c != nil && c.Environment == "production"
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the integer value of an environment variable,
// or the default when unset or unparsable
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsDurationOrDefault returns the duration value of an environment
// variable, or the default when unset or unparsable
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func parseCommaSeparatedList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
