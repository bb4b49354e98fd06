package application

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/api"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/config"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/routes"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/shell"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/views"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/web"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	client  config.ClientConfig
	table   *routes.Table
	shell   *shell.Shell
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New resolves the client configuration, builds the route table and mounts
// it at cfg.Anchor. A missing anchor is returned as an error matching
// shell.ErrMountTargetNotFound and no server is created.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	client := config.ResolveClient(cfg.Production())

	table, err := views.NewTable()
	if err != nil {
		return nil, fmt.Errorf("failed to build route table: %w", err)
	}

	assets, err := loadAssets(cfg.WebDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load web assets: %w", err)
	}

	document, err := fs.ReadFile(assets, web.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read shell document: %w", err)
	}

	mounted, err := shell.Mount(document, cfg.Anchor)
	if err != nil {
		return nil, fmt.Errorf("failed to mount application: %w", err)
	}

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	handler := api.NewHandler(client, table, mounted, logger)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithAllowedOrigins(cfg.AllowedOrigins),
		api.WithStatic(static),
	)

	logger.Info("application mounted",
		zap.String("anchor", mounted.Selector()),
		zap.String("environment", cfg.Environment),
		zap.String("api_url", client.APIURL()),
		zap.Int("routes", len(table.Routes())),
	)

	return &App{
		client:  client,
		table:   table,
		shell:   mounted,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// loadAssets returns the embedded web tree, or the directory named by webDir
// when set. The directory is looked up from the working directory upwards.
func loadAssets(webDir string) (fs.FS, error) {
	if webDir == "" {
		return web.Assets(), nil
	}
	if filepath.IsAbs(webDir) {
		return os.DirFS(webDir), nil
	}
	path, err := resolveProjectPath(webDir)
	if err != nil {
		return nil, err
	}
	return os.DirFS(path), nil
}

// resolveProjectPath locates a file or directory relative to the project root by walking up the directory tree.
func resolveProjectPath(relative string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, relative)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to locate %s", relative)
}
