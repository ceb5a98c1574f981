// Package http provides the HTTP handler for image uploads.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/lionscars/inventory/internal/upload"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 32 << 20

// ImageStore defines the storage operation required by the upload handler.
type ImageStore interface {
	// Save stores one image for a brand/model pair and returns its public URL.
	Save(brand, model, filename string, src io.Reader) (string, error)
}

// UploadHandler handles multipart image uploads.
type UploadHandler struct {
	// Store persists the uploaded image and derives its URL.
	Store ImageStore
	// Log reports storage failures.
	Log *zap.Logger
}

// Upload handles POST /upload. The multipart form must carry an "image"
// file plus "marca" and "modelo" fields; the response is the public URL of
// the stored file.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	brand := r.FormValue("marca")
	model := r.FormValue("modelo")
	if brand == "" || model == "" {
		http.Error(w, "marca and modelo are required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.Store.Save(brand, model, header.Filename, file)
	if errors.Is(err, upload.ErrBadExtension) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Log.Error("failed to store image", zap.Error(err))
		http.Error(w, "failed to store image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
}
