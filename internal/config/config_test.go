package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("WISHBOX_TEST_KEY", "from-env")

	if got := getEnv("WISHBOX_TEST_KEY", "fallback"); got != "from-env" {
		t.Errorf("expected env value, got %q", got)
	}
	if got := getEnv("WISHBOX_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}

	// A set-but-empty variable is an explicit value, not a miss.
	t.Setenv("WISHBOX_TEST_EMPTY", "")
	if got := getEnv("WISHBOX_TEST_EMPTY", "fallback"); got != "" {
		t.Errorf("expected empty set value to win over fallback, got %q", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WISHBOX_ADDR", ":9090")
	t.Setenv("WISHBOX_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Errorf("expected addr override, got %q", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level override, got %q", cfg.LogLevel)
	}
	if cfg.DBPath == "" {
		t.Error("expected a database path")
	}
}
