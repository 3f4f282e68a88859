package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// CORS origins allowed to call the API
	CORSOrigins []string
}

// LoadConfig creates a new Config instance from environment variables,
// falling back to Docker secrets and then to development defaults.
func LoadConfig() (*Config, error) {
	// A .env file is optional; environment variables win over it.
	if !IsProduction() {
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerHost:    getValue("SERVER_HOST", "server_host", "0.0.0.0"),
		ServerPort:    getValue("SERVER_PORT", "server_port", "8080"),
		DBHost:        getValue("DB_HOST", "db_host", "localhost"),
		DBPort:        getValue("DB_PORT", "db_port", "5432"),
		DBUser:        getValue("DB_USER", "db_user", "postgres"),
		DBPassword:    getValue("DB_PASSWORD", "db_password", "postgres"),
		DBName:        getValue("DB_NAME", "db_name", "pantrychef"),
		DBSSLMode:     getValue("DB_SSL_MODE", "db_ssl_mode", "disable"),
		RedisHost:     getValue("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     getValue("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      getValue("REDIS_URL", "redis_url", ""),
		JWTSecret:     getValue("JWT_SECRET", "jwt_secret", ""),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	origins := getValue("CORS_ORIGINS", "cors_origins", "http://localhost:5174,http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue resolves a config value: environment variable first, then a
// Docker secret file, then the development default.
func getValue(envVar, secretName, def string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
