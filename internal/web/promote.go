package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/model"
)

type promotePage struct {
	PageData
	SeniorYear int
}

func (s *Server) renderPromote(w http.ResponseWriter, r *http.Request, status int, pd PageData) {
	s.Templates.Render(w, status, "promote.html", &promotePage{
		PageData:   pd,
		SeniorYear: model.SeniorComputerYear,
	})
}

// PromotePage handles GET /promote.
func (s *Server) PromotePage(w http.ResponseWriter, r *http.Request) {
	s.renderPromote(w, r, http.StatusOK, s.page(r, "Complete Your Computer Year"))
}

// PromoteSubmit handles POST /promote.
func (s *Server) PromoteSubmit(w http.ResponseWriter, r *http.Request) {
	user := GetWebUser(r.Context())
	pd := s.page(r, "Complete Your Computer Year")

	promoted, err := s.App.Promote(r.Context(), user.ID)
	if err != nil {
		if !app.Known(err) {
			slog.Error("failed to promote user", "error", err)
		}
		pd.Error = sentence(app.Message(err))
		s.renderPromote(w, r, app.HTTPStatus(err), pd)
		return
	}

	pd.User = promoted
	pd.Success = app.PromotionMessage(promoted)
	s.renderPromote(w, r, http.StatusOK, pd)
}
