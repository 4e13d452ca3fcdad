package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(nil)

	rec, resp := doJSON(t, http.MethodGet, "/health", "", h.Liveness)

	if rec.Code != http.StatusOK || resp["status"] != "ok" {
		t.Fatalf("unexpected response: %d %+v", rec.Code, resp)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	h := NewHealthHandler(map[string]Pinger{"postgres": ok, "redis": ok})
	rec, resp := doJSON(t, http.MethodGet, "/health/ready", "", h.Readiness)
	if rec.Code != http.StatusOK || resp["status"] != "ok" {
		t.Fatalf("expected ready, got %d %+v", rec.Code, resp)
	}

	h = NewHealthHandler(map[string]Pinger{"postgres": ok, "redis": down})
	rec, resp = doJSON(t, http.MethodGet, "/health/ready", "", h.Readiness)
	if rec.Code != http.StatusServiceUnavailable || resp["status"] != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", rec.Code, resp)
	}
	deps := resp["dependencies"].(map[string]any)
	if deps["redis"].(map[string]any)["status"] != "unhealthy" {
		t.Fatalf("expected redis unhealthy, got %+v", deps)
	}
}
