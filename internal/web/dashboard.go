package web

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/imaging"
	"github.com/erazemk/educycle/internal/model"
)

// Messages shown after a successful form post, keyed by the done parameter.
var doneMessages = map[string]string{
	"shared":    "Item shared! Your experience has been updated.",
	"requested": "Item requested. Meet the senior at the pickup point.",
	"picked-up": "Item marked as picked up.",
	"image":     "Photo updated.",
}

type itemRow struct {
	model.Item
	CanRequest      bool
	CanMarkPickedUp bool
	CanUploadImage  bool
}

type dashboardPage struct {
	PageData
	Items      []itemRow
	Categories []model.Category
	Category   string
	Query      string
}

// Dashboard handles GET /.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	pd := s.page(r, "Dashboard")
	pd.Success = doneMessages[r.URL.Query().Get("done")]
	s.renderDashboard(w, r, http.StatusOK, pd)
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, status int, pd PageData) {
	user := GetWebUser(r.Context())
	filter := app.Filter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Query:    strings.TrimSpace(r.URL.Query().Get("q")),
	}

	items, err := s.App.Dashboard(r.Context(), user, filter)
	if err != nil {
		slog.Error("failed to list items for dashboard", "error", err)
		pd.Error = "Could not load items."
	}

	rows := make([]itemRow, 0, len(items))
	for i := range items {
		item := &items[i]
		rows = append(rows, itemRow{
			Item:            *item,
			CanRequest:      app.CanRequest(user, item),
			CanMarkPickedUp: app.CanMarkPickedUp(user, item),
			CanUploadImage:  user.IsSenior && item.SeniorID == user.ID && item.Status != model.StatusPickedUp,
		})
	}

	category := filter.Category
	if category == "" {
		category = app.AllCategories
	}

	s.Templates.Render(w, status, "dashboard.html", &dashboardPage{
		PageData:   pd,
		Items:      rows,
		Categories: model.Categories,
		Category:   category,
		Query:      filter.Query,
	})
}

// dashboardError re-renders the dashboard with err shown to the user.
func (s *Server) dashboardError(w http.ResponseWriter, r *http.Request, err error) {
	if !app.Known(err) {
		slog.Error("dashboard action failed", "path", r.URL.Path, "error", err)
	}
	pd := s.page(r, "Dashboard")
	pd.Error = sentence(app.Message(err))
	s.renderDashboard(w, r, app.HTTPStatus(err), pd)
}

// RequestSubmit handles POST /items/{id}/request.
func (s *Server) RequestSubmit(w http.ResponseWriter, r *http.Request) {
	user := GetWebUser(r.Context())

	if _, err := s.App.RequestItem(r.Context(), r.PathValue("id"), user.ID); err != nil {
		s.dashboardError(w, r, err)
		return
	}
	http.Redirect(w, r, "/?done=requested", http.StatusSeeOther)
}

// PickupSubmit handles POST /items/{id}/pickup.
func (s *Server) PickupSubmit(w http.ResponseWriter, r *http.Request) {
	user := GetWebUser(r.Context())

	_, err := s.App.MarkPickedUp(r.Context(), r.PathValue("id"), user.ID, strings.TrimSpace(r.FormValue("junior_id")))
	if err != nil {
		s.dashboardError(w, r, err)
		return
	}
	http.Redirect(w, r, "/?done=picked-up", http.StatusSeeOther)
}

// ItemImageSubmit handles POST /items/{id}/image.
func (s *Server) ItemImageSubmit(w http.ResponseWriter, r *http.Request) {
	user := GetWebUser(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<10)
	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		s.dashboardError(w, r, &app.ValidationError{Problems: []string{"file too large or invalid upload"}})
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.dashboardError(w, r, &app.ValidationError{Problems: []string{"choose an image to upload"}})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.dashboardError(w, r, err)
		return
	}

	if _, err := s.App.SetItemImage(r.Context(), r.PathValue("id"), user.ID, data); err != nil {
		s.dashboardError(w, r, err)
		return
	}
	http.Redirect(w, r, "/?done=image", http.StatusSeeOther)
}
