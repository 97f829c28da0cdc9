package gateway

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"geopilot/internal/pipeline"
	"geopilot/internal/secret"
)

type submitRequest struct {
	Query   string `json:"query"`
	Inspect *struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"inspect,omitempty"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in submitRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	key, err := s.creds.Get()
	if err != nil {
		if errors.Is(err, secret.ErrNotSet) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "no API credential configured; set one via PUT /v1/credential",
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	client, err := s.newClient(key)
	if err != nil {
		log.Printf("gateway: client setup: %v", err)
		http.Error(w, "completion client unavailable", http.StatusServiceUnavailable)
		return
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("gateway: client close: %v", err)
		}
	}()

	runner := pipeline.NewRunner(client, s.catalog, s.bridge)
	if in.Inspect != nil {
		runner.InspectAt = &pipeline.Coord{Lon: in.Inspect.Lon, Lat: in.Inspect.Lat}
	}

	s.runMu.Lock()
	resp := runner.Run(r.Context(), in.Query)
	s.runMu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

type credentialRequest struct {
	Value string `json:"value"`
}

// handleCredential stores or reports the API credential. Responses carry
// only presence and a coarse length class, never the value itself.
func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut, http.MethodPost:
		var in credentialRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		if err := s.creds.Set(strings.TrimSpace(in.Value)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("gateway: %s", secret.Describe(s.creds))
		writeJSON(w, http.StatusOK, credentialStatus(s.creds))
	case http.MethodGet:
		writeJSON(w, http.StatusOK, credentialStatus(s.creds))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func credentialStatus(store secret.Store) map[string]any {
	return map[string]any{
		"present": store.Has(),
		"status":  secret.Describe(store),
	}
}

// handleTasks lists the background tasks visible in the editor page.
func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tasks, err := s.bridge.ListTasks(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
