// Package config loads process configuration from flags and the
// environment, with a .env file honored for local runs.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	Catalog CatalogConfig
	LLM     LLMConfig
	Bridge  BridgeConfig
}

type CatalogConfig struct {
	// URL of the remote catalog snapshot; empty means the built-in
	// sample set serves every search.
	URL string
	// TTL of the cached snapshot; zero or negative means it never
	// expires.
	TTL time.Duration
}

type LLMConfig struct {
	// Provider selects the completion backend: "gemini", "openai",
	// or "fake".
	Provider string
	Model    string
	// CredentialEnv names the environment variable consulted when no
	// credential was set at runtime.
	CredentialEnv string
	// RPS caps outbound model calls per second; zero disables the cap.
	RPS float64
	// CacheTTL bounds how long identical prompts reuse a cached reply;
	// zero disables reply caching.
	CacheTTL time.Duration
}

type BridgeConfig struct {
	RunTimeout     time.Duration
	ConsoleTimeout time.Duration
	InspectTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	provider := flag.String("llm", "", "completion provider (gemini, openai, fake)")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:    *port,
		Env:     env,
		Catalog: loadCatalogConfig(),
		LLM:     loadLLMConfig(*provider),
		Bridge:  loadBridgeConfig(),
	}, nil
}

func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		URL: strings.TrimSpace(os.Getenv("CATALOG_URL")),
		TTL: durationEnv("CATALOG_TTL", 0),
	}
}

func loadLLMConfig(flagProvider string) LLMConfig {
	provider := firstNonEmpty(
		strings.TrimSpace(flagProvider),
		strings.TrimSpace(os.Getenv("LLM_PROVIDER")),
		"gemini",
	)
	return LLMConfig{
		Provider:      strings.ToLower(provider),
		Model:         strings.TrimSpace(os.Getenv("LLM_MODEL")),
		CredentialEnv: firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_CREDENTIAL_ENV")), "GEOPILOT_LLM_API_KEY"),
		RPS:           floatEnv("LLM_RPS", 0),
		CacheTTL:      durationEnv("LLM_CACHE_TTL", 0),
	}
}

func loadBridgeConfig() BridgeConfig {
	return BridgeConfig{
		RunTimeout:     durationEnv("BRIDGE_RUN_TIMEOUT", 5*time.Second),
		ConsoleTimeout: durationEnv("BRIDGE_CONSOLE_TIMEOUT", 3*time.Second),
		InspectTimeout: durationEnv("BRIDGE_INSPECT_TIMEOUT", 3*time.Second),
	}
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func floatEnv(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
