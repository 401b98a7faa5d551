package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
	"github.com/evenbetter/dtwin-cms/internal/ports"
	"github.com/evenbetter/dtwin-cms/internal/service"
)

// RouterServices holds everything the api router needs.
type RouterServices struct {
	Auth    *service.AuthService
	Content *service.ContentService
	Blogs   *service.BlogService
	Images  *service.ImageService

	// Verifier gates the role-protected mutations.
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

// NewRouter creates the api-side HTTP handler: auth, content, blog, and
// image routes with per-endpoint role gates.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth}, services.Verifier)
	registerContentRoutes(mux, &ContentHandlers{Svc: services.Content}, services.Verifier)
	registerBlogRoutes(mux, &BlogHandlers{Svc: services.Blogs}, services.Verifier)
	registerImageRoutes(mux, &ImageHandlers{Svc: services.Images})
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Logging(logger)(Recover(logger)(mux))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, verifier ports.TokenVerifier) {
	adminOnly := RequireRoles(verifier, domainauth.RoleAdmin)

	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/signup-admin", h.SignupAdmin)
	mux.HandleFunc("GET /auth/check-admin-exists", h.CheckAdminExists)
	mux.HandleFunc("POST /auth/reset-password", h.ResetPassword)
	mux.Handle("POST /auth/add-user", adminOnly(http.HandlerFunc(h.AddUser)))
	mux.Handle("GET /auth/users", adminOnly(http.HandlerFunc(h.Users)))
}

// registerContentRoutes wires section reads (public) and mutations (admin).
func registerContentRoutes(mux *http.ServeMux, h *ContentHandlers, verifier ports.TokenVerifier) {
	adminOnly := RequireRoles(verifier, domainauth.RoleAdmin)

	mux.HandleFunc("GET /api/content", h.List)
	mux.HandleFunc("GET /api/content/{section}", h.GetBySection)
	mux.Handle("POST /api/content", adminOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/content/{section}", adminOnly(http.HandlerFunc(h.Update)))
}

// registerBlogRoutes wires blog reads (public), create/update (admin or
// editor), and delete (admin).
func registerBlogRoutes(mux *http.ServeMux, h *BlogHandlers, verifier ports.TokenVerifier) {
	adminOnly := RequireRoles(verifier, domainauth.RoleAdmin)
	adminOrEditor := RequireRoles(verifier, domainauth.RoleAdmin, domainauth.RoleEditor)

	mux.HandleFunc("GET /api/blog", h.List)
	mux.HandleFunc("GET /api/blog/top", h.Top)
	mux.HandleFunc("GET /api/blog/{id}", h.GetByID)
	mux.Handle("POST /api/blog", adminOrEditor(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/blog/{id}", adminOrEditor(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/blog/{id}", adminOnly(http.HandlerFunc(h.Delete)))
}

// registerImageRoutes wires the image bucket endpoints. These carry no role
// gate, matching the backend they replace.
func registerImageRoutes(mux *http.ServeMux, h *ImageHandlers) {
	mux.HandleFunc("POST /api/images", h.Upload)
	mux.HandleFunc("GET /api/images", h.List)
	mux.HandleFunc("DELETE /api/images/{name}", h.Delete)
}
