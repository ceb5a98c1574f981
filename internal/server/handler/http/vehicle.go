// Package http provides HTTP handlers for the vehicle inventory.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lionscars/inventory/internal/models"
)

// VehicleService defines the inventory operations required by the HTTP
// handlers.
type VehicleService interface {
	// ListAll returns every vehicle plus the ids of undecodable rows.
	ListAll(ctx context.Context) ([]models.Vehicle, []int64, error)
	// Create stores a new document and returns it with its id.
	Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	// Update overwrites the document; matched reports whether the id existed.
	Update(ctx context.Context, id int64, v models.Vehicle) (models.Vehicle, bool, error)
	// Delete removes a document; idempotent.
	Delete(ctx context.Context, id int64) error
	// Increment bumps the named counter and returns the new value.
	Increment(ctx context.Context, id int64, counter string) (int64, error)
	// ResetMetrics zeroes counters everywhere and returns the touch count.
	ResetMetrics(ctx context.Context) (int64, error)
}

// VehicleHandler handles HTTP requests for vehicle documents and their
// counters.
type VehicleHandler struct {
	// VehicleService performs the underlying inventory operations.
	VehicleService VehicleService
	// Log reports skipped rows and no-op updates.
	Log *zap.Logger
}

// idParam parses the {id} path parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// List handles GET /autos. Rows whose stored bodies no longer decode are
// logged and skipped rather than failing the response.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, skipped, err := h.VehicleService.ListAll(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(skipped) > 0 {
		h.Log.Warn("skipped undecodable vehicle rows", zap.Int64s("ids", skipped))
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(vehicles)
}

// Create handles POST /autos. It echoes the stored document including the
// id assigned by the store.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, err := h.VehicleService.Create(r.Context(), v)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(created)
}

// Update handles PUT /autos/{id}, replacing the whole stored document.
// A PUT to an id that does not exist still reports success; the miss is
// only logged.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	updated, matched, err := h.VehicleService.Update(r.Context(), id, v)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !matched {
		h.Log.Warn("update matched no vehicle", zap.Int64("id", id))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

// Delete handles DELETE /autos/{id}. Deleting twice succeeds both times.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.VehicleService.Delete(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// View handles POST /autos/{id}/view and returns the new views count.
func (h *VehicleHandler) View(w http.ResponseWriter, r *http.Request) {
	h.increment(w, r, models.CounterViews, "vistas")
}

// Interested handles POST /autos/{id}/interested and returns the new
// interested count.
func (h *VehicleHandler) Interested(w http.ResponseWriter, r *http.Request) {
	h.increment(w, r, models.CounterInterested, "interesados")
}

func (h *VehicleHandler) increment(w http.ResponseWriter, r *http.Request, counter, wireName string) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	value, err := h.VehicleService.Increment(r.Context(), id, counter)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(w, "vehicle not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{wireName: value})
}

// ResetMetrics handles POST /autos/reset-metrics, zeroing views and
// interested across the whole inventory. The response reports how many
// documents were touched.
func (h *VehicleHandler) ResetMetrics(w http.ResponseWriter, r *http.Request) {
	n, err := h.VehicleService.ResetMetrics(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int64{"reset": n})
}
