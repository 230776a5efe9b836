package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.JWTAccessExpiry != 15*time.Minute {
		t.Fatalf("expected 15m access expiry, got %v", cfg.JWTAccessExpiry)
	}
	if cfg.JWTRefreshExpiry != 168*time.Hour {
		t.Fatalf("expected 168h refresh expiry, got %v", cfg.JWTRefreshExpiry)
	}
	if cfg.MongoDB != "campusbuddy" {
		t.Fatalf("expected default database name, got %s", cfg.MongoDB)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_WINDOW", "1m")

	cfg := Load()

	if cfg.JWTAccessExpiry != 5*time.Minute {
		t.Fatalf("expected 5m access expiry, got %v", cfg.JWTAccessExpiry)
	}
	if cfg.LoginMaxAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", cfg.LoginMaxAttempts)
	}
	if cfg.LoginWindow != time.Minute {
		t.Fatalf("expected 1m window, got %v", cfg.LoginWindow)
	}
}

func TestLoadIgnoresInvalidDurations(t *testing.T) {
	t.Setenv("JWT_REFRESH_EXPIRY", "not-a-duration")

	cfg := Load()

	if cfg.JWTRefreshExpiry != 168*time.Hour {
		t.Fatalf("expected fallback refresh expiry, got %v", cfg.JWTRefreshExpiry)
	}
}
