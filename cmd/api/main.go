package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"geopilot/internal/bridge"
	"geopilot/internal/catalog"
	"geopilot/internal/config"
	"geopilot/internal/gateway"
	"geopilot/internal/llm"
	"geopilot/internal/secret"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	creds := secret.NewEnvStore(cfg.LLM.CredentialEnv)
	log.Printf("startup: %s", secret.Describe(creds))

	cat := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.TTL)
	br := bridge.NewWSBridge(bridge.Timeouts{
		Run:     cfg.Bridge.RunTimeout,
		Console: cfg.Bridge.ConsoleTimeout,
		Inspect: cfg.Bridge.InspectTimeout,
	})

	srv := gateway.New(cfg, creds, cat, br, clientFactory(cfg.LLM))

	h := gateway.WithCORS(srv.Routes())
	log.Printf("Starting API server on %s (llm=%s)", cfg.Port, cfg.LLM.Provider)
	log.Fatal(http.ListenAndServe(cfg.Port, h2c.NewHandler(h, &http2.Server{})))
}

// clientFactory builds a fresh completion client per submitted request so
// credential changes apply without a restart.
func clientFactory(cfg config.LLMConfig) gateway.ClientFactory {
	return func(apiKey string) (llm.Client, error) {
		var (
			client llm.Client
			err    error
		)
		switch cfg.Provider {
		case "gemini":
			client, err = llm.NewGeminiClient(context.Background(), apiKey, cfg.Model)
		case "openai":
			client, err = llm.NewOpenAIClient(apiKey, cfg.Model, "")
		case "fake":
			client = llm.NewFakeClient()
		default:
			return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
		}
		if err != nil {
			return nil, err
		}

		var mws []llm.Middleware
		if cfg.CacheTTL > 0 {
			mws = append(mws, llm.CacheReplies(256, cfg.CacheTTL))
		}
		if cfg.RPS > 0 {
			mws = append(mws, llm.RateLimit(cfg.RPS, 1))
		}
		mws = append(mws, llm.LogCalls())
		return llm.Wrap(client, mws...), nil
	}
}
