package httpx

import (
	"net/http"

	"github.com/evenbetter/dtwin-cms/internal/domain/model"
	apperrors "github.com/evenbetter/dtwin-cms/internal/errors"
	"github.com/evenbetter/dtwin-cms/internal/service"
)

// ContentHandlers provides HTTP handlers for website content sections.
type ContentHandlers struct {
	Svc *service.ContentService
}

// List returns every section.
func (h *ContentHandlers) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, sections)
}

// GetBySection returns one section by its name.
func (h *ContentHandlers) GetBySection(w http.ResponseWriter, r *http.Request) {
	name, ok := sectionFromPath(w, r)
	if !ok {
		return
	}

	section, err := h.Svc.GetSection(r.Context(), name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, section)
}

// Create adds a new section.
func (h *ContentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSectionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	section, err := h.Svc.CreateSection(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, section)
}

// Update replaces the payload of an existing section.
func (h *ContentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	name, ok := sectionFromPath(w, r)
	if !ok {
		return
	}

	var req model.UpdateSectionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	section, err := h.Svc.UpdateSection(r.Context(), name, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, section)
}

// sectionFromPath resolves the {section} path value. Unknown names are
// accepted so sections created through the generic content fallback stay
// reachable by name; only an empty value is rejected.
func sectionFromPath(w http.ResponseWriter, r *http.Request) (model.SectionName, bool) {
	name, _ := model.ParseSectionName(r.PathValue("section"))
	if name == "" {
		WriteAppError(w, apperrors.Validation("section is required"))
		return "", false
	}
	return name, true
}
