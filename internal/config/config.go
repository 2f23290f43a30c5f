// Package config reads the Pennywise configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP Server
	APIURL *url.URL
	Port   string

	// Database
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Authentication
	JWTSecret             string
	AccessTokenTTL        time.Duration
	RefreshTokenTTL       time.Duration
	PasswordResetTTL      time.Duration
	FrontendURL           string
	RegistrationAllowlist string

	// Mail
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	// Notifications
	AMQPURL         string
	AMQPExchange    string
	AMQPQueue       string
	NotifyWorkers   int
	NotifyQueueSize int

	// Locking
	RedisURL string

	rawAPIURL string
}

// LoadDotEnv reads a .env file into the environment. Variables that are
// already set take precedence. A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func Load() *Config {
	cfg := &Config{
		rawAPIURL: getEnv("API_URL", ""),
		Port:      getEnv("PORT", "8080"),

		DBPath:     getEnv("DB_PATH", "data/pennywise.db"),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pennywise"),

		JWTSecret:             getEnv("JWT_SECRET", ""),
		AccessTokenTTL:        getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:       getEnvDuration("REFRESH_TOKEN_TTL", 168*time.Hour),
		PasswordResetTTL:      getEnvDuration("PASSWORD_RESET_TTL", 72*time.Hour),
		FrontendURL:           strings.TrimSuffix(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		RegistrationAllowlist: getEnv("REGISTRATION_ALLOWLIST", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "pennywise@localhost"),

		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPExchange:    getEnv("AMQP_EXCHANGE", "pennywise"),
		AMQPQueue:       getEnv("AMQP_QUEUE", "notifications"),
		NotifyWorkers:   getEnvInt("NOTIFY_WORKERS", 2),
		NotifyQueueSize: getEnvInt("NOTIFY_QUEUE_SIZE", 100),

		RedisURL: getEnv("REDIS_URL", ""),
	}

	return cfg
}

// Validate validates the configuration and returns an error listing all problems.
func (c *Config) Validate() error {
	var errors []string

	if c.rawAPIURL == "" {
		errors = append(errors, "API_URL must be set")
	} else if u, err := url.Parse(c.rawAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API_URL '%s': must be an absolute URL", c.rawAPIURL))
	} else {
		u.Path = strings.TrimSuffix(u.Path, "/")
		c.APIURL = u
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET must be at least 32 bytes long")
	}

	for name, ttl := range map[string]time.Duration{
		"ACCESS_TOKEN_TTL":   c.AccessTokenTTL,
		"REFRESH_TOKEN_TTL":  c.RefreshTokenTTL,
		"PASSWORD_RESET_TTL": c.PasswordResetTTL,
	} {
		if ttl <= 0 {
			errors = append(errors, fmt.Sprintf("invalid %s %v: must be positive", name, ttl))
		}
	}

	if c.DBHost == "" && c.DBPath == "" {
		errors = append(errors, "either DB_PATH or DB_HOST must be set")
	}

	if c.DBHost != "" && c.DBUser == "" {
		errors = append(errors, "DB_USER is required when DB_HOST is set")
	}

	if c.SMTPHost != "" && (c.SMTPPort < 1 || c.SMTPPort > 65535) {
		errors = append(errors, fmt.Sprintf("invalid SMTP port %d: must be between 1 and 65535", c.SMTPPort))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RedisURL != "" {
		if parsedURL, err := url.Parse(c.RedisURL); err != nil || (parsedURL.Scheme != "redis" && parsedURL.Scheme != "rediss") {
			errors = append(errors, fmt.Sprintf("invalid REDIS_URL '%s': must use the redis or rediss scheme", c.RedisURL))
		}
	}

	if c.NotifyWorkers < 1 {
		errors = append(errors, fmt.Sprintf("invalid NOTIFY_WORKERS %d: must be at least 1", c.NotifyWorkers))
	}

	if c.NotifyQueueSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid NOTIFY_QUEUE_SIZE %d: must be at least 1", c.NotifyQueueSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// PostgresDSN returns the connection string for PostgreSQL. It is only
// meaningful when DBHost is set.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=prefer TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
