package httpx

import (
	"errors"
	"net/http"

	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	"github.com/evenbetter/dtwin-cms/internal/service"
)

// BlogHandlers provides HTTP handlers for blog posts.
type BlogHandlers struct {
	Svc *service.BlogService
}

// List returns every blog post, newest first.
func (h *BlogHandlers) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, blogs)
}

// Top returns the landing-page summary: recent posts plus top tags.
func (h *BlogHandlers) Top(w http.ResponseWriter, r *http.Request) {
	top, err := h.Svc.Top(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, top)
}

// GetByID returns one blog post.
func (h *BlogHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := blogIDFromPath(w, r)
	if !ok {
		return
	}

	blog, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, blog)
}

// Create adds a blog post. Share links are derived server-side.
func (h *BlogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.BlogWriteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	blog, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, blog)
}

// Update replaces a blog post, re-deriving its share links.
func (h *BlogHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := blogIDFromPath(w, r)
	if !ok {
		return
	}

	var req model.BlogWriteRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	blog, err := h.Svc.Update(r.Context(), id, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, blog)
}

// Delete removes a blog post.
func (h *BlogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := blogIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func blogIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("blog id is required")},
		)
		return "", false
	}
	return id, true
}
