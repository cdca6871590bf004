package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// MinJWTSecretLen is the shortest accepted token signing secret
const MinJWTSecretLen = 32

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	// Operator auth is enabled when OperatorPasswordHash is set
	JWTSecret            string
	OperatorPasswordHash string

	KafkaBrokers []string

	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string
	ReminderTo        []string
	ReminderSchedule  string
	ReminderDaysAhead int
}

// NewConfig loads configuration from environment variables, reading a .env file first if present
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	daysAhead, err := strconv.Atoi(getEnv("REMINDER_DAYS_AHEAD", "7"))
	if err != nil {
		return nil, fmt.Errorf("REMINDER_DAYS_AHEAD must be an integer: %w", err)
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DBConn:               getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=tax sslmode=disable"),
		LogLevel:             getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		OperatorPasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
		KafkaBrokers:         splitList(getEnv("KAFKA_BROKERS", "")),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnv("SMTP_PORT", "587"),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		SenderEmail:          getEnv("SENDER_EMAIL", "noreply@tax-ledger.local"),
		ReminderTo:           splitList(getEnv("REMINDER_TO", "")),
		ReminderSchedule:     getEnv("REMINDER_SCHEDULE", "0 8 * * *"),
		ReminderDaysAhead:    daysAhead,
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.AuthEnabled() && len(cfg.JWTSecret) < MinJWTSecretLen {
		return nil, fmt.Errorf("JWT_SECRET of at least %d bytes is required when OPERATOR_PASSWORD_HASH is set", MinJWTSecretLen)
	}
	if cfg.ReminderDaysAhead < 0 {
		return nil, fmt.Errorf("REMINDER_DAYS_AHEAD must not be negative")
	}

	return cfg, nil
}

// AuthEnabled reports whether mutating routes require an operator token
func (c *Config) AuthEnabled() bool {
	return c.OperatorPasswordHash != ""
}

// RemindersEnabled reports whether due-date reminder mail can be sent
func (c *Config) RemindersEnabled() bool {
	return c.SMTPHost != "" && len(c.ReminderTo) > 0
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
