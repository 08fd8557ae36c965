package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spendwatch-hq/spendwatch/pkg/config"
	"spendwatch-hq/spendwatch/pkg/limits"
	"spendwatch-hq/spendwatch/pkg/limits/provider"
	"spendwatch-hq/spendwatch/pkg/limits/storage"
)

func newTestServer(t *testing.T) (*Server, storage.Backend) {
	t.Helper()

	backend := storage.NewMemoryBackend()
	orch := provider.NewOrchestrator(provider.NewStoreProvider(backend), limits.DefaultPolicy(), nil)

	cfg := &config.ServerConfig{
		ListenAddress:   "127.0.0.1:0",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxHeaderBytes:  1 << 20,
	}

	srv := New(cfg, Deps{
		Orchestrator: orch,
		Backend:      backend,
		Metrics:      limits.NewMetrics(nil),
		MetricsPath:  "/metrics",
	})
	return srv, backend
}

func TestServer_EndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := ts.Client()

	// Create an account.
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/accounts/acct-1",
		strings.NewReader(`{"daily_limit": 500, "limit_type": "new_account"}`))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	// Record spending.
	resp, err = client.Post(ts.URL+"/v1/accounts/acct-1/spend", "application/json",
		strings.NewReader(`{"amount": 100}`))
	if err != nil {
		t.Fatalf("spend request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("spend status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Evaluate the limit status.
	resp, err = client.Get(ts.URL + "/v1/accounts/acct-1/limit-status")
	if err != nil {
		t.Fatalf("status request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("limit-status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body struct {
		State  string        `json:"state"`
		Status limits.Status `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.State != "ready" {
		t.Errorf("state = %q, want ready", body.State)
	}
	if body.Status.Remaining != 400 {
		t.Errorf("remaining = %v, want 400", body.Status.Remaining)
	}
	if body.Status.UsagePercentage != 20 {
		t.Errorf("usage = %v, want 20", body.Status.UsagePercentage)
	}
	if !body.Status.UpgradeEligible {
		t.Error("expected brand new account to be upgrade eligible")
	}

	// Request ID header is present on every response.
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestServer_UnknownAccountIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/v1/accounts/ghost/limit-status")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestServer_HealthAndReady(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for _, path := range []string{"/health", "/ready"} {
		resp, err := ts.Client().Get(ts.URL + path)
		if err != nil {
			t.Fatalf("%s request failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d, want %d", path, resp.StatusCode, http.StatusOK)
		}
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Post(ts.URL+"/health", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	// Wait for the server to come up.
	deadline := time.After(2 * time.Second)
	for !srv.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("server did not start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	if srv.IsRunning() {
		t.Error("expected server stopped after shutdown")
	}
}
