package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"geopilot/internal/bridge"
	"geopilot/internal/catalog"
	"geopilot/internal/config"
	"geopilot/internal/llm"
	"geopilot/internal/pipeline"
	"geopilot/internal/secret"
)

func newTestServer() (*Server, *secret.MemoryStore) {
	store := secret.NewMemoryStore()
	srv := New(
		&config.Config{},
		store,
		catalog.NewClient("", 0),
		bridge.NewWSBridge(bridge.Timeouts{}),
		func(key string) (llm.Client, error) { return llm.NewFakeClient(), nil },
	)
	return srv, store
}

func TestSubmitWithoutCredential(t *testing.T) {
	srv, _ := newTestServer()
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/submit", "application/json",
		strings.NewReader(`{"query": "show elevation"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestSubmitRunsPipeline(t *testing.T) {
	srv, store := newTestServer()
	if err := store.Set("test-key-value"); err != nil {
		t.Fatalf("set: %v", err)
	}
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/submit", "application/json",
		strings.NewReader(`{"query": "Show me elevation data for the Grand Canyon"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out pipeline.FinalResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Text == "" {
		t.Fatal("empty terminal response")
	}
	if out.Code == "" {
		t.Fatal("expected generated code in response")
	}
}

func TestSubmitRejectsBadBody(t *testing.T) {
	srv, _ := newTestServer()
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/submit", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestCredentialRoundTrip(t *testing.T) {
	srv, _ := newTestServer()
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	get := func() map[string]any {
		resp, err := http.Get(ts.URL + "/v1/credential")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer resp.Body.Close()
		var out map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return out
	}

	if got := get(); got["present"] != false {
		t.Fatalf("expected absent credential, got %v", got)
	}

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/credential",
		strings.NewReader(`{"value": "sk-sample-credential-0123456789"}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	body := new(strings.Builder)
	if err := json.NewEncoder(body).Encode(mustDecode(t, resp)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.Contains(body.String(), "sk-sample-credential") {
		t.Fatal("credential value leaked into the response")
	}

	if got := get(); got["present"] != true {
		t.Fatalf("expected stored credential, got %v", got)
	}
}

func TestCredentialRejectsBlank(t *testing.T) {
	srv, _ := newTestServer()
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/credential",
		strings.NewReader(`{"value": "   "}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestTasksWithoutPage(t *testing.T) {
	srv, _ := newTestServer()
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/tasks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer()
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer()
	ts := httptest.NewServer(WithCORS(srv.Routes()))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/v1/submit", nil)
	req.Header.Set("Origin", "chrome-extension://abcdef")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "chrome-extension://abcdef" {
		t.Fatalf("allow-origin %q", got)
	}
}

func mustDecode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}
