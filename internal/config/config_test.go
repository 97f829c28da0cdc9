package config

import (
	"testing"
	"time"
)

func TestDurationEnv(t *testing.T) {
	t.Setenv("X_TTL", "90s")
	if got := durationEnv("X_TTL", time.Minute); got != 90*time.Second {
		t.Fatalf("got %v", got)
	}
	if got := durationEnv("X_UNSET", time.Minute); got != time.Minute {
		t.Fatalf("fallback ignored: %v", got)
	}
	t.Setenv("X_BAD", "soon")
	if got := durationEnv("X_BAD", time.Minute); got != time.Minute {
		t.Fatalf("bad value must fall back: %v", got)
	}
}

func TestFloatEnv(t *testing.T) {
	t.Setenv("X_RPS", "2.5")
	if got := floatEnv("X_RPS", 0); got != 2.5 {
		t.Fatalf("got %v", got)
	}
	t.Setenv("X_RPS", "fast")
	if got := floatEnv("X_RPS", 1); got != 1 {
		t.Fatalf("bad value must fall back: %v", got)
	}
}

func TestLoadLLMConfigDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_CREDENTIAL_ENV", "")
	cfg := loadLLMConfig("")
	if cfg.Provider != "gemini" {
		t.Fatalf("got provider %q", cfg.Provider)
	}
	if cfg.CredentialEnv != "GEOPILOT_LLM_API_KEY" {
		t.Fatalf("got credential env %q", cfg.CredentialEnv)
	}
}

func TestLoadLLMConfigFlagWins(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	cfg := loadLLMConfig("Fake")
	if cfg.Provider != "fake" {
		t.Fatalf("got provider %q", cfg.Provider)
	}
}
