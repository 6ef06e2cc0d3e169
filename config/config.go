package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Configuration
	Port string
	Env  string

	// Database Configuration
	MongoURI string
	DBName   string

	// Security Configuration
	JWTSecret   string
	JWTLifetime time.Duration

	// Login throttling (attempts per minute, per client IP)
	LoginRateLimit int

	// External stock-video provider
	StockAPIKey     string
	StockAPIBaseURL string

	// Outbound mail
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Comma-separated list of allowed origins. Empty means allow-all.
	CORSAllowedOrigins string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads the configuration from environment variables. A missing
// .env file is not an error; real deployments set the environment directly.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	env := getEnvOrDefault("GO_ENV", "development")

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  env,

		MongoURI: getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   getEnvOrDefault("DB_NAME", "streamiadb"),

		JWTSecret:   getEnvOrDefault("JWT_SECRET", ""),
		JWTLifetime: getDurationOrDefault("JWT_LIFETIME", 2*time.Hour),

		LoginRateLimit: getIntOrDefault("LOGIN_RATE_LIMIT", 5),

		StockAPIKey:     getEnvOrDefault("STOCK_API_KEY", ""),
		StockAPIBaseURL: getEnvOrDefault("STOCK_API_BASE_URL", "https://api.pexels.com/videos"),

		SMTPHost: getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort: getIntOrDefault("SMTP_PORT", 587),
		SMTPUser: getEnvOrDefault("SMTP_USER", ""),
		SMTPPass: getEnvOrDefault("SMTP_PASS", ""),
		MailFrom: getEnvOrDefault("MAIL_FROM", "no-reply@streamia.app"),

		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", ""),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations that would silently weaken the deployment.
func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.Env != "development" {
			return errors.New("JWT_SECRET must be set outside development")
		}
		// Development-only fallback so the server can boot without setup.
		c.JWTSecret = "streamia-dev-secret"
	}
	if c.JWTLifetime <= 0 {
		return errors.New("JWT_LIFETIME must be a positive duration")
	}
	if c.LoginRateLimit <= 0 {
		return errors.New("LOGIN_RATE_LIMIT must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
