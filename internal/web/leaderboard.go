package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/erazemk/educycle/internal/model"
)

type leaderboardPage struct {
	PageData
	Seniors []model.User
}

// LeaderboardPage handles GET /leaderboard. The quote is fetched by the
// page itself from /leaderboard/quote.
func (s *Server) LeaderboardPage(w http.ResponseWriter, r *http.Request) {
	pd := s.page(r, "XP Leaderboard")

	seniors, err := s.App.Leaderboard(r.Context())
	if err != nil {
		slog.Error("failed to build leaderboard", "error", err)
		pd.Error = "Could not load the leaderboard."
	}

	s.Templates.Render(w, http.StatusOK, "leaderboard.html", &leaderboardPage{
		PageData: pd,
		Seniors:  seniors,
	})
}

// LeaderboardQuote handles GET /leaderboard/quote.
func (s *Server) LeaderboardQuote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(map[string]string{"quote": s.App.Quote(r.Context())}); err != nil {
		slog.Error("failed to write quote", "error", err)
	}
}
