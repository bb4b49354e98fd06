package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/config"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/routes"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/shell"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler serves the pages of the route table and the JSON endpoints that
// describe them.
type Handler struct {
	client config.ClientConfig
	table  *routes.Table
	shell  *shell.Shell
	logger *zap.Logger

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(client config.ClientConfig, table *routes.Table, mounted *shell.Shell, logger *zap.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		client: client,
		table:  table,
		shell:  mounted,
		logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, h.client)
}

func (h *Handler) handleRoutes(w http.ResponseWriter, r *http.Request) {
	_ = r
	declared := h.table.Routes()
	resp := make([]routeResponse, 0, len(declared))
	for _, route := range declared {
		resp = append(resp, routeResponse{Path: route.Path, View: route.View.Name()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found", "no API endpoint at "+r.URL.Path)
}

// handlePage renders the view bound to the request path inside the shell.
func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	match, ok := h.table.Match(r.URL.EscapedPath())
	if !ok {
		http.NotFound(w, r)
		return
	}

	var content bytes.Buffer
	err := match.Route.View.Render(&content, routes.RenderRequest{
		Path:   r.URL.Path,
		Params: match.Params,
		Client: h.client,
	})
	if err != nil {
		h.logger.Error("view render failed",
			zap.String("view", match.Route.View.Name()),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFromContext(r.Context())),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var page bytes.Buffer
	if err := h.shell.Render(&page, content.Bytes()); err != nil {
		h.logger.Error("shell render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(page.Bytes())
	}
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type routeResponse struct {
	Path string `json:"path"`
	View string `json:"view"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}
