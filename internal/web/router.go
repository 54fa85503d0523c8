package web

import (
	"log/slog"
	"net/http"

	"github.com/justinas/alice"

	"github.com/erazemk/educycle/internal/app"
	webembed "github.com/erazemk/educycle/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(a *app.App) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		App:       a,
		Templates: templates,
	}

	mux := http.NewServeMux()
	session := alice.New(SessionMiddleware(a))

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.Static))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("POST /logout", s.Logout)
	mux.HandleFunc("POST /permission", s.PermissionSubmit)

	// Session routes.
	mux.Handle("GET /{$}", session.ThenFunc(s.Dashboard))
	mux.Handle("POST /items/{id}/request", session.ThenFunc(s.RequestSubmit))
	mux.Handle("POST /items/{id}/pickup", session.ThenFunc(s.PickupSubmit))
	mux.Handle("POST /items/{id}/image", session.ThenFunc(s.ItemImageSubmit))
	mux.Handle("GET /items/{id}/image", session.ThenFunc(s.ItemImageGet))

	mux.Handle("GET /share", session.ThenFunc(s.SharePage))
	mux.Handle("POST /share", session.ThenFunc(s.ShareSubmit))

	mux.Handle("GET /leaderboard", session.ThenFunc(s.LeaderboardPage))
	mux.Handle("GET /leaderboard/quote", session.ThenFunc(s.LeaderboardQuote))

	mux.Handle("GET /promote", session.ThenFunc(s.PromotePage))
	mux.Handle("POST /promote", session.ThenFunc(s.PromoteSubmit))

	return mux, nil
}

// ItemImageGet handles GET /items/{id}/image.
func (s *Server) ItemImageGet(w http.ResponseWriter, r *http.Request) {
	img, err := s.App.ItemImage(r.Context(), r.PathValue("id"))
	if err != nil {
		if !app.Known(err) {
			slog.Error("failed to get image", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", img.MIME)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(img.Data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}
