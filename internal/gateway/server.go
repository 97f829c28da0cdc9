// Package gateway exposes the pipeline over HTTP: request submission,
// credential management, the editor page websocket, and health.
package gateway

import (
	"net/http"
	"strings"
	"sync"

	"geopilot/internal/bridge"
	"geopilot/internal/catalog"
	"geopilot/internal/config"
	"geopilot/internal/llm"
	"geopilot/internal/secret"
)

// ClientFactory builds a completion client from the stored credential.
// It runs once per submitted request so credential updates take effect
// without a restart.
type ClientFactory func(apiKey string) (llm.Client, error)

// Server holds the long-lived pieces shared across requests.
type Server struct {
	cfg       *config.Config
	creds     secret.Store
	catalog   *catalog.Client
	bridge    *bridge.WSBridge
	newClient ClientFactory

	// runMu serializes pipeline runs; the editor page is a single
	// shared surface and concurrent scripts would trample each other.
	runMu sync.Mutex
}

func New(cfg *config.Config, creds secret.Store, cat *catalog.Client, br *bridge.WSBridge, factory ClientFactory) *Server {
	return &Server{
		cfg:       cfg,
		creds:     creds,
		catalog:   cat,
		bridge:    br,
		newClient: factory,
	}
}

// Routes builds the HTTP mux for the server.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/submit", s.handleSubmit)
	mux.HandleFunc("/v1/credential", s.handleCredential)
	mux.HandleFunc("/v1/tasks", s.handleTasks)
	mux.HandleFunc("/ws/bridge", s.bridge.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// WithCORS wraps a handler with permissive CORS for the browser extension.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
