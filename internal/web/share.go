package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/model"
)

type sharePage struct {
	PageData
	Form         app.ShareInput
	Categories   []model.Category
	PickupPoints []model.PickupPoint
}

func (s *Server) renderShare(w http.ResponseWriter, r *http.Request, status int, form app.ShareInput, errMsg string) {
	pd := s.page(r, "Share an Item")
	pd.Error = errMsg
	s.Templates.Render(w, status, "share.html", &sharePage{
		PageData:     pd,
		Form:         form,
		Categories:   model.Categories,
		PickupPoints: model.PickupPoints,
	})
}

// SharePage handles GET /share.
func (s *Server) SharePage(w http.ResponseWriter, r *http.Request) {
	user := GetWebUser(r.Context())
	if !user.IsSenior {
		s.dashboardError(w, r, app.ErrNotSenior)
		return
	}

	s.renderShare(w, r, http.StatusOK, app.ShareInput{
		Category:    model.CategoryBooks,
		PickupPoint: model.PickupLibrary,
	}, "")
}

// ShareSubmit handles POST /share.
func (s *Server) ShareSubmit(w http.ResponseWriter, r *http.Request) {
	user := GetWebUser(r.Context())
	if !user.IsSenior {
		s.dashboardError(w, r, app.ErrNotSenior)
		return
	}

	form := app.ShareInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    model.Category(r.FormValue("category")),
		PickupPoint: model.PickupPoint(r.FormValue("pickup_point")),
		ImageURL:    r.FormValue("image_url"),
	}

	if _, err := s.App.ShareItem(r.Context(), user.ID, form); err != nil {
		if !app.Known(err) {
			slog.Error("failed to share item", "error", err)
		}
		s.renderShare(w, r, app.HTTPStatus(err), form, sentence(app.Message(err)))
		return
	}

	http.Redirect(w, r, "/?done=shared", http.StatusSeeOther)
}
