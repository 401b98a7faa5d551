package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenbetter/dtwin-cms/internal/adapters/upstream"
)

func newTestEdgeRouter(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()
	if upstreamURL == "" {
		upstreamURL = "http://127.0.0.1:0"
	}
	client, err := upstream.NewClient(upstream.Config{BaseURL: upstreamURL})
	require.NoError(t, err)
	return NewEdgeRouter(EdgeServices{
		Sessions: newTestSessions(testVerifier()),
		Upstream: client,
		Logger:   discardLogger(),
	})
}

// Login writes both cookies, the session endpoint reflects them, a gated
// page opens, and logout clears everything again.
func TestEdge_LoginLogoutRoundTrip(t *testing.T) {
	router := newTestEdgeRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/session/login",
		strings.NewReader(`{"token":"`+editorToken+`","role":"editor"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/editor/dashboard", decodeBody(t, rec)["redirect"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	// The session endpoint sees exactly what was stored.
	req = httptest.NewRequest(http.MethodGet, "/session", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, editorToken, body["token"])
	assert.Equal(t, "editor", body["role"])

	// The editor dashboard opens with the cookies attached.
	req = httptest.NewRequest(http.MethodGet, "/editor/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Logout expires both cookies and is idempotent.
	for range 2 {
		req = httptest.NewRequest(http.MethodPost, "/session/logout", nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/login", decodeBody(t, rec)["redirect"])
		for _, c := range rec.Result().Cookies() {
			assert.Negative(t, c.MaxAge)
		}
	}
}

func TestEdge_SessionLoginRequiresToken(t *testing.T) {
	router := newTestEdgeRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/session/login",
		strings.NewReader(`{"role":"editor"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEdge_SessionLoginUnknownRoleRedirectsHome(t *testing.T) {
	router := newTestEdgeRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/session/login",
		strings.NewReader(`{"token":"t","role":"wizard"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", decodeBody(t, rec)["redirect"])
}

func TestEdge_GateProtectsPages(t *testing.T) {
	router := newTestEdgeRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEdge_ServesStaticAssets(t *testing.T) {
	router := newTestEdgeRouter(t, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/dashboard.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), "--accent")
}

func TestEdge_ProxiesBackendRoutes(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/blog":
			_, _ = w.Write([]byte(`[]`))
		case "/auth/check-admin-exists":
			_, _ = w.Write([]byte(`{"exists":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	router := newTestEdgeRouter(t, backend.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/blog", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// /auth/* is proxied too; the gate does not interfere.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/check-admin-exists", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())
}
