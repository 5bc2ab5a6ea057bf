package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chatservice "github.com/yosoybienestar/chat-bienestar/backend/internal/service/chat"
	"github.com/yosoybienestar/chat-bienestar/backend/internal/service/verify"
)

func TestHealthReportsSessionCount(t *testing.T) {
	svc := chatservice.NewService(verify.NewClient("", 0), time.Minute)
	router := NewRouter(svc)

	svc.CreateSession(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("unexpected status: %s", body.Status)
	}
	if body.Sessions != 1 {
		t.Fatalf("expected 1 session, got %d", body.Sessions)
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	svc := chatservice.NewService(verify.NewClient("", 0), time.Minute)
	router := NewRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	svc := chatservice.NewService(verify.NewClient("", 0), time.Minute)
	router := NewRouter(svc)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat/messages", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin: %q", got)
	}
}
