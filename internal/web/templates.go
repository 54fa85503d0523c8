package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/model"
	webembed "github.com/erazemk/educycle/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"statusClass": func(s model.ItemStatus) string {
			switch s {
			case model.StatusAvailable:
				return "status-available"
			case model.StatusRequested:
				return "status-requested"
			default:
				return "status-picked-up"
			}
		},
		"rank": func(i int) int { return i + 1 },
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.Templates

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"login.html",
		"dashboard.html",
		"share.html",
		"leaderboard.html",
		"promote.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title      string
	User       *model.User
	Permission model.Permission
	Path       string
	Error      string
	Success    string
}

// ShowBanner reports whether the storage permission banner is shown.
func (p *PageData) ShowBanner() bool {
	return p.Permission != model.PermissionGranted
}

// Server holds all dependencies for page handlers.
type Server struct {
	App       *app.App
	Templates *Templates
}

// page builds the PageData every template starts from.
func (s *Server) page(r *http.Request, title string) PageData {
	p, err := s.App.Permission(r.Context())
	if err != nil {
		slog.Error("failed to read storage permission", "error", err)
		p = model.PermissionPrompt
	}
	return PageData{
		Title:      title,
		User:       GetWebUser(r.Context()),
		Permission: p,
		Path:       r.URL.Path,
	}
}
