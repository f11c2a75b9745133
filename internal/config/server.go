// Package config provides configuration management for Helpdesk Pro.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment represents the deployment environment.
type Environment string

const (
	// EnvDevelopment is the default local development environment.
	EnvDevelopment Environment = "development"
	// EnvStaging is the staging/pre-production environment.
	EnvStaging Environment = "staging"
	// EnvProduction is the production environment.
	EnvProduction Environment = "production"
)

// ServerConfig holds server-level configuration loaded from environment variables.
type ServerConfig struct {
	Environment       Environment
	ListenAddr        string
	SessionMaxAge     int // session lifetime in seconds (default: 86400)
	AllowedOrigins    []string
	RateLimitRequests int64
	RateLimitPeriod   string
	SessionSweepSpec  string // cron spec for the expired-session sweeper
}

// LoadServerConfig reads server configuration from environment variables.
func LoadServerConfig() ServerConfig {
	env := Environment(os.Getenv("ENV"))
	switch env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// valid
	default:
		env = EnvDevelopment
	}

	sessionMaxAge := getEnvInt("SESSION_MAX_AGE", 86400)
	if sessionMaxAge <= 0 {
		sessionMaxAge = 86400
	}

	return ServerConfig{
		Environment:       env,
		ListenAddr:        getEnvString("LISTEN_ADDR", ":8080"),
		SessionMaxAge:     sessionMaxAge,
		AllowedOrigins:    getEnvList("CORS_ORIGINS"),
		RateLimitRequests: int64(getEnvInt("RATE_LIMIT_REQUESTS", 100)),
		RateLimitPeriod:   getEnvString("RATE_LIMIT_PERIOD", "1m"),
		SessionSweepSpec:  getEnvString("SESSION_SWEEP_SPEC", "@hourly"),
	}
}

// getEnvString reads a string from an environment variable, returning the default if unset.
func getEnvString(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt reads an integer from an environment variable, returning the default if unset or invalid.
func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// getEnvList reads a comma-separated list from an environment variable.
func getEnvList(key string) []string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
