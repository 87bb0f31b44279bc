package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Database
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Google OAuth (Gmail + Calendar)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
	GoogleTokenFile    string
	GoogleCalendarID   string
	Timezone           string

	// AI
	AIProvider    string
	GeminiApiKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string

	// Polling
	PollInterval        time.Duration
	PollMaxResults      int64
	PollMaxPerCycle     int
	PollAIDelay         time.Duration
	PollForceUrgent     bool
	PollSeenCapacity    int
	PollCheckLedger     bool
	BreakerThreshold    int
	BreakerCooldown     time.Duration
	CalendarPlaceholder string

	// Notifications
	GoogleProjectID     string
	GooglePubSubTopic   string
	GoogleCredentials   string
	FirebaseCredentials string

	// API auth
	JWTSecret         string
	JWTAccessExpiry   time.Duration
	AdminUsername     string
	AdminPasswordHash string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "redalert"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),
		GoogleTokenFile:    getEnv("GOOGLE_TOKEN_FILE", "tokens/token.json"),
		GoogleCalendarID:   getEnv("GOOGLE_CALENDAR_ID", "primary"),
		Timezone:           getEnv("TIMEZONE", "UTC"),

		AIProvider:    getEnv("AI_PROVIDER", "auto"),
		GeminiApiKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),

		PollInterval:        getDuration("POLL_INTERVAL", time.Minute),
		PollMaxResults:      int64(getInt("POLL_MAX_RESULTS", 10)),
		PollMaxPerCycle:     getInt("POLL_MAX_PER_CYCLE", 5),
		PollAIDelay:         getDuration("POLL_AI_DELAY", 2*time.Second),
		PollForceUrgent:     getBool("POLL_FORCE_URGENT", true),
		PollSeenCapacity:    getInt("POLL_SEEN_CAPACITY", 1000),
		PollCheckLedger:     getBool("POLL_CHECK_LEDGER", true),
		BreakerThreshold:    getInt("BREAKER_THRESHOLD", 5),
		BreakerCooldown:     getDuration("BREAKER_COOLDOWN", time.Minute),
		CalendarPlaceholder: getEnv("CALENDAR_PLACEHOLDER_LOCATION", "Online"),

		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		GooglePubSubTopic:   getEnv("GOOGLE_PUBSUB_TOPIC", ""),
		GoogleCredentials:   getEnv("GOOGLE_CREDENTIALS", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:   getDuration("JWT_ACCESS_EXPIRY", 12*time.Hour),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}
}

// DSN returns the Postgres connection string, preferring DATABASE_URL when set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Location resolves Timezone, falling back to UTC on an unknown zone name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("[Config] Unknown TIMEZONE %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

// AuthEnabled reports whether the API requires a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("[Config] Invalid duration for %s: %q, using %s", key, value, defaultValue)
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("[Config] Invalid integer for %s: %q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		log.Printf("[Config] Invalid boolean for %s: %q, using %t", key, value, defaultValue)
	}
	return defaultValue
}
