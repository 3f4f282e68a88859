package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Production refuses to start without a JWT secret;
// development falls back to a fixed one so the server runs out of the box.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errors = append(errors, fmt.Sprintf("SERVER_PORT must be numeric, got %q", cfg.ServerPort))
	}
	if _, err := strconv.Atoi(cfg.DBPort); err != nil {
		errors = append(errors, fmt.Sprintf("DB_PORT must be numeric, got %q", cfg.DBPort))
	}
	if cfg.DBHost == "" {
		errors = append(errors, "DB_HOST is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "DB_NAME is required")
	}

	if cfg.JWTSecret == "" {
		if IsProduction() {
			errors = append(errors, "jwt_secret secret is required in production")
		} else {
			cfg.JWTSecret = "dev-insecure-jwt-secret"
		}
	}

	if IsProduction() && cfg.DBPassword == "" {
		errors = append(errors, "db_password secret is required in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
