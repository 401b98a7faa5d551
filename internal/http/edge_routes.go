package httpx

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/evenbetter/dtwin-cms"
	"github.com/evenbetter/dtwin-cms/internal/adapters/upstream"
	"github.com/evenbetter/dtwin-cms/internal/domain/access"
	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
)

// EdgeServices holds everything the edge router needs.
type EdgeServices struct {
	Sessions *SessionManager
	Upstream *upstream.Client
	Logger   *slog.Logger
}

// NewEdgeRouter creates the edge-side HTTP handler: the access gate in front
// of every page route, the session endpoints that mirror the token into
// cookies, and the backend proxy routes.
func NewEdgeRouter(services EdgeServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	proxy := &ProxyHandlers{Upstream: services.Upstream, Logger: logger}
	mux.HandleFunc("/api/", proxy.Relay)
	mux.HandleFunc("/auth/", proxy.Relay)

	sessionHandlers := &SessionHandlers{Sessions: services.Sessions}
	registerSessionRoutes(mux, sessionHandlers)
	registerPageRoutes(mux)
	mux.Handle("GET /static/", http.FileServerFS(dtwincms.StaticAssets()))

	gated := Gate(services.Sessions)(mux)
	return Logging(logger)(Recover(logger)(gated))
}

// SessionHandlers exposes the login/logout endpoints that write the cookie
// pair the gate reads. The token itself is issued by the backend; these
// handlers only mirror it.
type SessionHandlers struct {
	Sessions *SessionManager
}

type sessionLoginRequest struct {
	Token string          `json:"token"`
	Role  domainauth.Role `json:"role"`
}

// Login stores the token and role in the cookie pair and tells the client
// where to navigate next.
func (h *SessionHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req sessionLoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation",
			Err:     fmt.Errorf("token is required"),
		})
		return
	}

	h.Sessions.Write(w, req.Token, req.Role)
	WriteJSON(w, http.StatusOK, map[string]string{
		"redirect": access.DashboardFor(req.Role),
	})
}

// Logout clears the cookie pair. Idempotent: logging out twice is fine.
func (h *SessionHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	WriteJSON(w, http.StatusOK, map[string]string{"redirect": access.LoginPath})
}

// Current reports the session as reconstructed from the cookies, which is
// exactly what the gate sees.
func (h *SessionHandlers) Current(w http.ResponseWriter, r *http.Request) {
	session := h.Sessions.FromRequest(r)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": session.Authenticated(),
		"token":         session.Token,
		"role":          session.Role,
	})
}

func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers) {
	mux.HandleFunc("POST /session/login", h.Login)
	mux.HandleFunc("POST /session/logout", h.Logout)
	mux.HandleFunc("GET /session", h.Current)
}

// registerPageRoutes wires minimal placeholder pages for every zone the gate
// protects. The real UI is rendered elsewhere; these exist so the gate has
// routes to guard.
func registerPageRoutes(mux *http.ServeMux) {
	pages := map[string]string{
		"GET /{$}":             "home",
		"GET /login":           "login",
		"GET /forgot-password": "forgot password",
		"GET /admin-setup":     "admin setup",
		"GET /preview":         "preview",
		"GET /admin/":          "admin",
		"GET /editor/":         "editor",
		"GET /seo/":            "seo",
	}
	for pattern, title := range pages {
		mux.Handle(pattern, pageHandler(title))
	}

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func pageHandler(title string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!DOCTYPE html><title>%s</title><h1>%s</h1>", title, title)
	})
}
