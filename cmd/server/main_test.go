package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/njia-ai/njia-bot/internal/platform/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, Host: "127.0.0.1"},
		AI: config.AIConfig{
			Ollama: config.OllamaConfig{
				Enabled: true,
				URL:     "http://localhost:11434",
				Model:   "llama3.2",
			},
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
	}
}

func TestBuildServer_MemoryStore(t *testing.T) {
	srv, cleanup, err := buildServer(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("buildServer() error = %v", err)
	}
	defer cleanup()

	mux := srv.Routes()

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"healthz returns 200", "/healthz", http.StatusOK},
		{"readyz returns 200", "/readyz", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestBuildServer_SessionRoundTrip(t *testing.T) {
	srv, cleanup, err := buildServer(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("buildServer() error = %v", err)
	}
	defer cleanup()

	mux := srv.Routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sessions", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, want 201", rec.Code)
	}
}

func TestBuildServer_BadCatalogPath(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogPath = "/does/not/exist.yaml"

	if _, _, err := buildServer(context.Background(), cfg); err == nil {
		t.Fatal("buildServer() should fail for a missing catalog file")
	}
}

func TestBuildRouter(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.AIConfig
		wantEnabled bool
		wantModel   string
	}{
		{
			name:        "none",
			cfg:         config.AIConfig{},
			wantEnabled: false,
			wantModel:   "",
		},
		{
			name: "google",
			cfg: config.AIConfig{
				Google: config.GoogleConfig{APIKey: "AIza-test", Model: "gemini-2.5-flash"},
			},
			wantEnabled: true,
			wantModel:   "gemini-2.5-flash",
		},
		{
			name: "ollama",
			cfg: config.AIConfig{
				Ollama: config.OllamaConfig{Enabled: true, URL: "http://localhost:11434", Model: "llama3.2"},
			},
			wantEnabled: true,
			wantModel:   "llama3.2",
		},
		{
			name: "google preferred over ollama",
			cfg: config.AIConfig{
				Google: config.GoogleConfig{APIKey: "AIza-test", Model: "gemini-2.5-flash"},
				Ollama: config.OllamaConfig{Enabled: true, URL: "http://localhost:11434", Model: "llama3.2"},
			},
			wantEnabled: true,
			wantModel:   "gemini-2.5-flash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, model := buildRouter(tt.cfg)
			if router.HasProvider() != tt.wantEnabled {
				t.Errorf("HasProvider() = %v, want %v", router.HasProvider(), tt.wantEnabled)
			}
			if model != tt.wantModel {
				t.Errorf("model = %q, want %q", model, tt.wantModel)
			}
		})
	}
}
