package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	DemoMode     bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string
	BookingInbox   string

	UploadDir     string
	SubmitTimeout time.Duration
	WizardTTL     time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// Demo mode runs against the seeded in-memory catalog without a database
	// and logs outbound emails instead of sending them.
	cfg.DemoMode = getEnv("DEMO_MODE", "") == "true"

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required unless running in demo mode
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" && !cfg.DemoMode {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Outbound email. Empty SENDGRID_API_KEY falls back to the logging stub.
	cfg.SendGridAPIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.EmailFrom = getEnv("EMAIL_FROM", "hello@makingbetter.online")
	cfg.EmailFromName = getEnv("EMAIL_FROM_NAME", "ServeConnect")
	cfg.BookingInbox = getEnv("BOOKING_INBOX", "hello@makingbetter.online")

	// Directory for uploaded profile images
	cfg.UploadDir = getEnv("UPLOAD_DIR", "./uploads")

	// Upper bound on a single booking submission (persistence + notification).
	timeoutStr := getEnv("SUBMIT_TIMEOUT", "15s")
	cfg.SubmitTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SUBMIT_TIMEOUT: %w", err)
	}

	// How long an abandoned wizard session is kept before expiry.
	wizardTTLStr := getEnv("WIZARD_TTL", "1h")
	cfg.WizardTTL, err = time.ParseDuration(wizardTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WIZARD_TTL: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
