package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/evenbetter/dtwin-cms/internal/service"
)

// maxImageUploadBytes caps multipart uploads at 10 MiB.
const maxImageUploadBytes = 10 << 20

// ImageHandlers provides HTTP handlers for the public image bucket.
type ImageHandlers struct {
	Svc *service.ImageService
}

// Upload stores one multipart file under the "file" field.
func (h *ImageHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_multipart", Err: err})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_file", Err: errors.New("file field is required")},
		)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes+1))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "read_failed", Err: err})
		return
	}
	if len(data) > maxImageUploadBytes {
		WriteError(
			w,
			ErrorParams{Code: http.StatusRequestEntityTooLarge, ErrCode: "file_too_large", Err: errors.New("file exceeds upload limit")},
		)
		return
	}

	image, err := h.Svc.Upload(r.Context(), service.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, image)
}

// List returns every image in the bucket with its public URL.
func (h *ImageHandlers) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"images": images})
}

// Delete removes an image by its object name.
func (h *ImageHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.Svc.Delete(r.Context(), name); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
