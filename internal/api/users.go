package api

import (
	"net/http"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/model"
)

// UsersHandler handles the caller's profile, progression and the leaderboard.
type UsersHandler struct {
	App *app.App
}

type promoteResponse struct {
	User    *model.User `json:"user"`
	Message string      `json:"message"`
}

// Me handles GET /api/me.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.App)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Promote handles POST /api/me/promote.
func (h *UsersHandler) Promote(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.App)
	if !ok {
		return
	}

	promoted, err := h.App.Promote(r.Context(), user.ID)
	if err != nil {
		appError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, promoteResponse{User: promoted, Message: app.PromotionMessage(promoted)})
}

// Leaderboard handles GET /api/leaderboard.
func (h *UsersHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.App.Leaderboard(r.Context())
	if err != nil {
		appError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, board)
}
