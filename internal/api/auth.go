package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/auth"
	"github.com/erazemk/educycle/internal/model"
	"github.com/erazemk/educycle/internal/store"
)

// AuthHandler handles authentication endpoints. Tokens are independent of
// the web UI's session marker.
type AuthHandler struct {
	App       *app.App
	Backend   store.Backend
	JWTSecret string
}

type loginRequest struct {
	Email string `json:"email"`
	ID    string `json:"id"`
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.ID == "" {
		jsonError(w, http.StatusBadRequest, "email and id required")
		return
	}

	user, err := h.App.Authenticate(r.Context(), req.Email, req.ID)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		}
		appError(w, r, err)
		return
	}

	h.issueToken(w, http.StatusOK, user)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req app.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.App.CreateUser(r.Context(), req)
	if err != nil {
		appError(w, r, err)
		return
	}

	h.issueToken(w, http.StatusCreated, user)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, status int, user *model.User) {
	token, err := auth.GenerateToken(h.JWTSecret, user.ID, user.Email)
	if err != nil {
		slog.Error("generating token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	jsonResponse(w, status, tokenResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := store.RevokeToken(r.Context(), h.Backend, claims.ID, claims.ExpiresAt.Time); err != nil {
		slog.Error("revoking token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to revoke token")
		return
	}

	slog.Info("user logged out", "user", claims.UserID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
