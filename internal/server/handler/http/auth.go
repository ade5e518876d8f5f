package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notesia/notesia/internal/middleware"
	"github.com/notesia/notesia/internal/models"
	"github.com/notesia/notesia/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new account and returns its user id.
	Register(ctx context.Context, email, password, fullName, username string) (string, error)
	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, email, password string) (*models.Token, error)
	// Profile returns the account data for a user id.
	Profile(ctx context.Context, userID string) (*models.User, error)
	// Logout revokes a bearer token.
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles HTTP requests for registration, login, profile and
// logout.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// registerRequest represents the JSON payload for user registration.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
}

// loginRequest represents the JSON payload for login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register. It expects a JSON body with
// non-empty email and password; username and full_name are optional.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	userID, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.FullName, req.Username)
	if errors.Is(err, service.ErrEmailTaken) {
		writeError(w, http.StatusBadRequest, "email is already registered")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "user registered successfully",
		"user_id": userID,
	})
}

// Login handles POST /auth/login, answering with the issued bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	tok, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tok)
}

// Me handles GET /auth/me for the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	u, err := h.AuthService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// Logout handles POST /auth/logout, revoking the presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)

	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
