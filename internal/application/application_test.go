package application

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/config"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/shell"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(":8085")
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if app.server == nil || app.router == nil || app.handler == nil || app.shell == nil {
		t.Fatalf("expected server, router, handler, and shell to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
	if len(app.table.Routes()) != 5 {
		t.Fatalf("expected five routes, got %d", len(app.table.Routes()))
	}
	if app.client.APIURL() != config.DevelopmentAPIURL {
		t.Fatalf("expected development API URL, got %s", app.client.APIURL())
	}
}

func TestNewResolvesProductionClient(t *testing.T) {
	cfg := baseTestConfig(":0")
	cfg.Environment = config.EnvProduction

	app, err := New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.client.APIURL() != config.ProductionAPIURL {
		t.Fatalf("expected production API URL, got %s", app.client.APIURL())
	}
}

func TestNewRendersRootViewInitially(t *testing.T) {
	app, err := New(baseTestConfig(":0"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `<div id="app"><section class="view" data-view="test-list"`) {
		t.Fatalf("expected test list mounted at #app, got %s", rec.Body.String())
	}
}

func TestNewFailsWithoutMountTarget(t *testing.T) {
	cfg := baseTestConfig(":0")
	cfg.Anchor = "#missing"

	app, err := New(cfg, zaptest.NewLogger(t))
	if app != nil {
		t.Fatalf("expected no application on mount failure")
	}
	if !errors.Is(err, shell.ErrMountTargetNotFound) {
		t.Fatalf("expected mount target error, got %v", err)
	}

	var target *shell.MountTargetNotFoundError
	if !errors.As(err, &target) || target.Selector != "#missing" {
		t.Fatalf("expected MountTargetNotFoundError for #missing, got %v", err)
	}
}

func TestNewLoadsWebDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "templates", "index.html"), `<html><body><main id="root"></main></body></html>`)
	writeFile(t, filepath.Join(dir, "static", "app.css"), "main{}")

	cfg := baseTestConfig(":0")
	cfg.WebDir = dir
	cfg.Anchor = "#root"

	app, err := New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/manage", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `<main id="root"><section class="view" data-view="test-manager"`) {
		t.Fatalf("expected manager view in custom shell, got %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	if rec.Body.String() != "main{}" {
		t.Fatalf("expected static asset from web dir, got %q", rec.Body.String())
	}
}

func TestNewFailsForMissingWebDir(t *testing.T) {
	cfg := baseTestConfig(":0")
	cfg.WebDir = "definitely-not-a-real-web-dir"

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for missing web dir")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestResolveProjectPathFindsGoMod(t *testing.T) {
	path, err := resolveProjectPath("go.mod")
	if err != nil {
		t.Fatalf("resolveProjectPath returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected go.mod to exist at %s: %v", path, err)
	}
}

func TestResolveProjectPathUnknownTarget(t *testing.T) {
	if _, err := resolveProjectPath("definitely-not-a-real-file"); err == nil {
		t.Fatalf("expected error for missing resource")
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func baseTestConfig(port string) config.Config {
	return config.Config{
		Port:                 port,
		Environment:          config.EnvDevelopment,
		Anchor:               "#app",
		AllowedOrigins:       []string{"*"},
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
