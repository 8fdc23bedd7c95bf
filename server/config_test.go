package server

import (
	"reflect"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HOST", "PORT", "APP_ENV", "ALLOWED_ORIGINS",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_STRATEGY", "RATE_LIMIT_WINDOW_MS", "RATE_LIMIT_MAX",
		"RATE_KEY_HEADER", "TRUST_XFF", "ADD_RATELIMIT_HEADERS", "RETRY_AFTER",
		"CONCURRENCY_MAX", "CONCURRENCY_TIMEOUT",
		"RATE_STATS_ENABLED", "RATE_STATS_REDIS_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func TestReadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ReadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Host != "127.0.0.1" || cfg.Port != 3000 {
		t.Fatalf("expected 127.0.0.1:3000, got %s", cfg.Addr())
	}
	if cfg.Env != "development" {
		t.Fatalf("expected development env, got %q", cfg.Env)
	}
	if !cfg.RateLimitEnabled || cfg.RateLimitStrategy != "window" {
		t.Fatalf("expected window rate limit enabled by default")
	}
	if cfg.RateLimitWindow != 15*time.Minute {
		t.Fatalf("expected 15m window, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitMax != 100 {
		t.Fatalf("expected max 100, got %d", cfg.RateLimitMax)
	}
	if cfg.AllowedOrigins != nil {
		t.Fatalf("expected no allowed origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.StatsEnabled {
		t.Fatalf("expected redis stats off by default")
	}
}

func TestReadConfig_ReadsValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "60000")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_STRATEGY", "bucket")

	cfg, err := ReadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %s", cfg.Addr())
	}
	if cfg.Env != "production" {
		t.Fatalf("unexpected env %q", cfg.Env)
	}
	want := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitWindow != time.Minute || cfg.RateLimitMax != 5 {
		t.Fatalf("unexpected rate config window=%s max=%d", cfg.RateLimitWindow, cfg.RateLimitMax)
	}
	if cfg.RateLimitStrategy != "bucket" {
		t.Fatalf("unexpected strategy %q", cfg.RateLimitStrategy)
	}
}

func TestReadConfig_InvalidValuesFallBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("RATE_LIMIT_MAX", "abc")

	cfg, err := ReadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 3000 || cfg.RateLimitMax != 100 {
		t.Fatalf("expected defaults on unparsable values, got port=%d max=%d", cfg.Port, cfg.RateLimitMax)
	}
}

func TestReadConfig_RejectsBadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "70000")

	if _, err := ReadConfig(); err == nil {
		t.Fatalf("expected error for out-of-range port")
	}
}

func TestReadConfig_RejectsUnknownStrategy(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_STRATEGY", "leaky")

	if _, err := ReadConfig(); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestReadConfig_RejectsBadWindowWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_WINDOW_MS", "0")

	if _, err := ReadConfig(); err == nil {
		t.Fatalf("expected error for zero window")
	}
}

func TestReadConfig_StatsRequiresRedisAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_STATS_ENABLED", "true")

	if _, err := ReadConfig(); err == nil {
		t.Fatalf("expected error when stats enabled without redis addr")
	}
}
