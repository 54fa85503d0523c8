package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/model"
)

type webContextKey string

const webUserKey webContextKey = "webuser"

// SessionMiddleware loads the session user and redirects to the login page
// when there is none. With storage not granted there never is one.
func SessionMiddleware(a *app.App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.CurrentUser(r.Context())
			if err != nil {
				slog.Error("failed to read session", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if user == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), webUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetWebUser retrieves the session user from web context.
func GetWebUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(webUserKey).(*model.User)
	return user
}
