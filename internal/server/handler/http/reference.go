// Package http provides HTTP handlers for the reference lookup tables.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lionscars/inventory/internal/models"
)

// ReferenceService defines the reference-data operations required by the
// HTTP handlers.
type ReferenceService interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	CreateBrand(ctx context.Context, b models.Brand) (models.Brand, bool, error)
	DeleteBrand(ctx context.Context, id int64) error

	ListColors(ctx context.Context) ([]models.Color, error)
	CreateColor(ctx context.Context, c models.Color) (models.Color, bool, error)
	DeleteColor(ctx context.Context, id int64) error

	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, bool, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ReferenceHandler handles HTTP requests for brands, colors and users.
type ReferenceHandler struct {
	// ReferenceService performs the underlying reference-data operations.
	ReferenceService ReferenceService
	// Log reports ignored duplicate keys.
	Log *zap.Logger
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// ListBrands handles GET /brands, ordered by name.
func (h *ReferenceHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.ReferenceService.ListBrands(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	writeJSON(w, brands)
}

// CreateBrand handles POST /brands. A duplicate name is not an error; the
// existing row is echoed back unchanged.
func (h *ReferenceHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var b models.Brand
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil || b.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, inserted, err := h.ReferenceService.CreateBrand(r.Context(), b)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !inserted {
		h.Log.Info("duplicate brand ignored", zap.String("name", b.Name))
	}
	writeJSON(w, created)
}

// DeleteBrand handles DELETE /brands/{id}. Idempotent.
func (h *ReferenceHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.ReferenceService.DeleteBrand)
}

// ListColors handles GET /colors, ordered by name.
func (h *ReferenceHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.ReferenceService.ListColors(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if colors == nil {
		colors = []models.Color{}
	}
	writeJSON(w, colors)
}

// CreateColor handles POST /colors with the same duplicate policy as brands.
func (h *ReferenceHandler) CreateColor(w http.ResponseWriter, r *http.Request) {
	var c models.Color
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil || c.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, inserted, err := h.ReferenceService.CreateColor(r.Context(), c)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !inserted {
		h.Log.Info("duplicate color ignored", zap.String("name", c.Name))
	}
	writeJSON(w, created)
}

// DeleteColor handles DELETE /colors/{id}. Idempotent.
func (h *ReferenceHandler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.ReferenceService.DeleteColor)
}

// ListUsers handles GET /users.
func (h *ReferenceHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.ReferenceService.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, users)
}

// CreateUser handles POST /users. The role defaults to "vendedor" when the
// request carries none; duplicate usernames follow the brand policy.
func (h *ReferenceHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil || u.Username == "" || u.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, inserted, err := h.ReferenceService.CreateUser(r.Context(), u)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !inserted {
		h.Log.Info("duplicate user ignored", zap.String("username", u.Username))
	}
	writeJSON(w, created)
}

// DeleteUser handles DELETE /users/{id}. Idempotent.
func (h *ReferenceHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.ReferenceService.DeleteUser)
}

func (h *ReferenceHandler) deleteByID(w http.ResponseWriter, r *http.Request, del func(context.Context, int64) error) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := del(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}
