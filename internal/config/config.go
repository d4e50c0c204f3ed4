// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/krishisetu/krishisetu/internal/adapter/mail"
)

// Config holds all configuration for the service.
type Config struct {
	Port         string
	DatabasePath string

	JWTSecret string
	JWTTTL    time.Duration
	CodeTTL   time.Duration

	SMTP mail.Config

	SuperAdminEmail    string
	SuperAdminPassword string
}

// Load reads configuration from the environment. Values in a .env file in
// the working directory are used for variables that are not already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("reading .env file failed", "error", err)
	}

	jwtTTL, err := durationOrDefault("JWT_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	codeTTL, err := durationOrDefault("OTP_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	smtpPort, err := intOrDefault("SMTP_PORT", 587)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:         envOrDefault("PORT", "8080"),
		DatabasePath: envOrDefault("DATABASE_PATH", "krishisetu.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTTTL:       jwtTTL,
		CodeTTL:      codeTTL,
		SMTP: mail.Config{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     envOrDefault("SMTP_FROM", "no-reply@krishisetu.local"),
		},
		SuperAdminEmail:    os.Getenv("SUPERADMIN_EMAIL"),
		SuperAdminPassword: os.Getenv("SUPERADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if (cfg.SuperAdminEmail == "") != (cfg.SuperAdminPassword == "") {
		return Config{}, errors.New("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}

func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}
