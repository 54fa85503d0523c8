package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/model"
)

// authForm is the login page's data, refilled after a failed submit.
type authForm struct {
	PageData
	Registering bool
	Email       string
	ID          string
	Course      string
	Year        string
	IsSenior    bool
}

// LoginPage handles GET /login. ?register=1 opens the registration form.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user, _ := s.App.CurrentUser(r.Context()); user != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, http.StatusOK, "login.html", &authForm{
		PageData:    s.page(r, "Login"),
		Registering: r.URL.Query().Get("register") != "",
	})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := &authForm{
		PageData: s.page(r, "Login"),
		Email:    strings.TrimSpace(r.FormValue("email")),
		ID:       strings.TrimSpace(r.FormValue("id")),
	}

	if form.Email == "" || form.ID == "" {
		form.Error = "Enter your email and ID."
		s.Templates.Render(w, http.StatusBadRequest, "login.html", form)
		return
	}

	if _, err := s.App.Login(r.Context(), form.Email, form.ID); err != nil {
		if !app.Known(err) {
			slog.Error("login failed", "error", err)
		} else {
			slog.Warn("login failed", "email", form.Email, "remote", r.RemoteAddr)
		}
		form.Error = sentence(app.Message(err))
		s.Templates.Render(w, http.StatusUnauthorized, "login.html", form)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterSubmit handles POST /register.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	form := &authForm{
		PageData:    s.page(r, "Registration"),
		Registering: true,
		Email:       strings.TrimSpace(r.FormValue("email")),
		ID:          strings.TrimSpace(r.FormValue("id")),
		Course:      strings.TrimSpace(r.FormValue("course")),
		Year:        strings.TrimSpace(r.FormValue("year")),
		IsSenior:    r.FormValue("is_senior") != "",
	}

	year, err := strconv.Atoi(form.Year)
	if err != nil {
		form.Error = "Enter your enrollment year as a number."
		s.Templates.Render(w, http.StatusBadRequest, "login.html", form)
		return
	}

	_, err = s.App.Register(r.Context(), app.RegisterInput{
		Email:    form.Email,
		ID:       form.ID,
		Course:   form.Course,
		Year:     year,
		IsSenior: form.IsSenior,
	})
	if err != nil {
		if !app.Known(err) {
			slog.Error("registration failed", "error", err)
		}
		form.Error = sentence(app.Message(err))
		s.Templates.Render(w, app.HTTPStatus(err), "login.html", form)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.App.Logout(r.Context()); err != nil {
		slog.Error("logout failed", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// PermissionSubmit handles POST /permission from the storage banner.
func (s *Server) PermissionSubmit(w http.ResponseWriter, r *http.Request) {
	p := model.Permission(r.FormValue("permission"))
	if err := s.App.SetPermission(r.Context(), p); err != nil {
		if app.IsValidation(err) {
			http.Error(w, app.Message(err), http.StatusBadRequest)
			return
		}
		slog.Error("failed to store permission", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, localPath(r.FormValue("next")), http.StatusSeeOther)
}

// localPath keeps redirects on this site.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
