package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/evenbetter/dtwin-cms/internal/adapters/upstream"
)

// ProxyHandlers relays backend calls for the edge service. Requests are
// forwarded verbatim, one outbound call per inbound request: no retry, no
// timeout override, no deduplication.
type ProxyHandlers struct {
	Upstream *upstream.Client
	Logger   *slog.Logger
}

// Relay forwards the request to the backend and writes its reply unchanged,
// error payloads included. When the backend is unreachable, reads degrade to
// an empty default so pages still render; mutations surface a fixed error.
func (h *ProxyHandlers) Relay(w http.ResponseWriter, r *http.Request) {
	mutating := r.Method != http.MethodGet && r.Method != http.MethodHead

	authorization := r.Header.Get("Authorization")
	if mutating && authorization == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "read_failed", Err: err})
		return
	}

	resp, err := h.Upstream.Forward(r.Context(), upstream.ForwardParams{
		Method:        r.Method,
		Path:          r.URL.RequestURI(),
		Authorization: authorization,
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "upstream unreachable",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
		if mutating {
			WriteError(w, ErrorParams{
				Code:    http.StatusInternalServerError,
				ErrCode: "upstream_unreachable",
				Err:     errors.New("upstream request failed"),
			})
			return
		}
		h.writeReadFallback(w, r.URL.Path)
		return
	}

	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		return
	}
}

// writeReadFallback degrades a failed read to the empty value its page
// expects: blog lists render as no posts, content as no sections.
func (h *ProxyHandlers) writeReadFallback(w http.ResponseWriter, path string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	switch {
	case pathHasPrefix(path, "/api/content"):
		_, _ = w.Write([]byte(`{"content":{}}`))
	default:
		_, _ = w.Write([]byte(`[]`))
	}
}

func pathHasPrefix(path, prefix string) bool {
	if len(path) < len(prefix) || path[:len(prefix)] != prefix {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}

func (h *ProxyHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
