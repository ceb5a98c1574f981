// Package http provides the HTTP handler for credential login.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lionscars/inventory/internal/models"
)

// AuthService defines the credential check required by the login handler.
type AuthService interface {
	// Authenticate returns the stored role for an exact username/password
	// match, or models.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for credential login.
type AuthHandler struct {
	// AuthService performs the underlying credential check.
	AuthService AuthService
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login. It expects a JSON body with non-empty
// "username" and "password" fields and answers with the account's role.
// A mismatch is a client error, never a 500.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	role, err := h.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"user":   req.Username,
		"role":   role,
	})
}
