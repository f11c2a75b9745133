package config

import (
	"os"
	"reflect"
	"testing"
)

func TestLoadServerConfig_DefaultEnvironment(t *testing.T) {
	os.Unsetenv("ENV")
	cfg := LoadServerConfig()
	if cfg.Environment != EnvDevelopment {
		t.Errorf("expected %q, got %q", EnvDevelopment, cfg.Environment)
	}
}

func TestLoadServerConfig_InvalidEnvironment(t *testing.T) {
	t.Setenv("ENV", "invalid")
	cfg := LoadServerConfig()
	if cfg.Environment != EnvDevelopment {
		t.Errorf("expected %q for invalid ENV, got %q", EnvDevelopment, cfg.Environment)
	}
}

func TestLoadServerConfig_ValidEnvironments(t *testing.T) {
	tests := []struct {
		env  string
		want Environment
	}{
		{"development", EnvDevelopment},
		{"staging", EnvStaging},
		{"production", EnvProduction},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("ENV", tt.env)
			cfg := LoadServerConfig()
			if cfg.Environment != tt.want {
				t.Errorf("expected %q, got %q", tt.want, cfg.Environment)
			}
		})
	}
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	os.Unsetenv("LISTEN_ADDR")
	os.Unsetenv("SESSION_MAX_AGE")
	os.Unsetenv("CORS_ORIGINS")
	cfg := LoadServerConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.ListenAddr)
	}
	if cfg.SessionMaxAge != 86400 {
		t.Errorf("expected 86400, got %d", cfg.SessionMaxAge)
	}
	if cfg.AllowedOrigins != nil {
		t.Errorf("expected nil origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRequests != 100 || cfg.RateLimitPeriod != "1m" {
		t.Errorf("unexpected rate limit defaults: %d per %s", cfg.RateLimitRequests, cfg.RateLimitPeriod)
	}
	if cfg.SessionSweepSpec != "@hourly" {
		t.Errorf("expected @hourly, got %q", cfg.SessionSweepSpec)
	}
}

func TestLoadServerConfig_NegativeSessionMaxAge(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "-5")
	cfg := LoadServerConfig()
	if cfg.SessionMaxAge != 86400 {
		t.Errorf("expected default for negative value, got %d", cfg.SessionMaxAge)
	}
}

func TestLoadServerConfig_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com ,")
	cfg := LoadServerConfig()
	want := []string{"https://app.example.com", "https://staging.example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("got %v, want %v", cfg.AllowedOrigins, want)
	}
}
