package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/angelmondragon/rentalhub-backend/pkg/config"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := serve(HealthReady(cfg, testLogger(), map[string]Pinger{"db": ok, "redis": ok}), newRequest(http.MethodGet, "/health/ready", "", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-RentalHub-Env") != "test" {
		t.Fatalf("expected env header")
	}

	rec = serve(HealthReady(cfg, testLogger(), map[string]Pinger{"db": ok, "redis": down}), newRequest(http.MethodGet, "/health/ready", "", nil))
	env := decodeEnvelope(t, rec)
	if rec.Code != http.StatusServiceUnavailable || env.Errors["redis"] != "unavailable" || env.Errors["db"] != "ok" {
		t.Fatalf("unexpected readiness failure %d %+v", rec.Code, env)
	}
}

func TestHealthLiveAndUser(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	if rec := serve(HealthLive(cfg), newRequest(http.MethodGet, "/health/live", "", nil)); rec.Code != http.StatusOK {
		t.Fatalf("expected live 200, got %d", rec.Code)
	}
	rec := serve(CurrentUser(), newRequest(http.MethodGet, "/v1/user", "", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
