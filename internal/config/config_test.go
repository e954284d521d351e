package config

import (
	"testing"
	"time"
)

func TestRateLimitDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatal("rate limiting should default to enabled")
	}
	if cfg.Capacity != 20 || cfg.RefillTokens != 1 || cfg.RefillInterval != time.Second {
		t.Fatalf("bucket defaults = %d/%d/%s", cfg.Capacity, cfg.RefillTokens, cfg.RefillInterval)
	}
	if cfg.Prefix != "property-api:rl" {
		t.Fatalf("prefix = %q", cfg.Prefix)
	}
	if cfg.KeyStrategy != "ip_route" {
		t.Fatalf("key strategy = %q", cfg.KeyStrategy)
	}
}

func TestRateLimitTTLFloor(t *testing.T) {
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "30s")

	cfg := LoadRateLimitConfig()
	// A bucket expiring before it refills would reset to full capacity.
	if cfg.TTL < 5*time.Minute {
		t.Fatalf("TTL = %s, want at least 5 refill intervals", cfg.TTL)
	}
}

func TestRateLimitSanitizesBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 || cfg.RefillTokens != 1 {
		t.Fatalf("capacity/refill = %d/%d, want 1/1", cfg.Capacity, cfg.RefillTokens)
	}
}

func TestCacheDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled || cfg.TTL != time.Minute {
		t.Fatalf("enabled/TTL = %v/%s", cfg.Enabled, cfg.TTL)
	}
	if cfg.Prefix != "property-api:cache" {
		t.Fatalf("prefix = %q", cfg.Prefix)
	}
	if !cfg.Methods["GET"] || cfg.Methods["POST"] {
		t.Fatalf("methods = %v, want GET only", cfg.Methods)
	}
}

func TestCacheMethodsParsing(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head ,")

	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || len(cfg.Methods) != 2 {
		t.Fatalf("methods = %v", cfg.Methods)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "on")
	t.Setenv("X_INT", "not-a-number")
	t.Setenv("X_DUR", "90s")

	if !envBool("X_BOOL", false) {
		t.Fatal(`envBool("on") = false`)
	}
	if got := envInt("X_INT", 7); got != 7 {
		t.Fatalf("envInt on garbage = %d, want the default", got)
	}
	if got := envDur("X_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("envDur = %s", got)
	}
	if got := envStr("X_UNSET_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("envStr = %q", got)
	}
}
