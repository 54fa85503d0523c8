package api

import (
	"net/http"

	"github.com/justinas/alice"
	"github.com/rs/cors"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/store"
)

// NewRouter creates the API router with all endpoints registered. Requests
// from allowedOrigins pass CORS.
func NewRouter(a *app.App, backend store.Backend, jwtSecret string, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{App: a, Backend: backend, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{App: a}
	itemsHandler := &ItemsHandler{App: a}
	metaHandler := &MetaHandler{App: a}

	authed := alice.New(AuthMiddleware(jwtSecret, backend))
	seniors := authed.Append(RequireSenior(a))

	// Public.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("GET /api/options", metaHandler.Options)

	mux.Handle("POST /api/auth/logout", authed.ThenFunc(authHandler.Logout))

	// Users.
	mux.Handle("GET /api/me", authed.ThenFunc(usersHandler.Me))
	mux.Handle("POST /api/me/promote", authed.ThenFunc(usersHandler.Promote))
	mux.Handle("GET /api/leaderboard", authed.ThenFunc(usersHandler.Leaderboard))

	// Items: read and request (all), share and hand over (seniors).
	mux.Handle("GET /api/items", authed.ThenFunc(itemsHandler.List))
	mux.Handle("POST /api/items", seniors.ThenFunc(itemsHandler.Create))
	mux.Handle("GET /api/items/{id}", authed.ThenFunc(itemsHandler.Get))
	mux.Handle("POST /api/items/{id}/request", authed.ThenFunc(itemsHandler.Request))
	mux.Handle("POST /api/items/{id}/pickup", seniors.ThenFunc(itemsHandler.Pickup))
	mux.Handle("PUT /api/items/{id}/image", seniors.ThenFunc(itemsHandler.UploadImage))
	mux.Handle("GET /api/items/{id}/image", authed.ThenFunc(itemsHandler.GetImage))

	mux.Handle("GET /api/quote", authed.ThenFunc(metaHandler.Quote))

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(mux)
}
