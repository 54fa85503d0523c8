package api

import (
	"net/http"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/model"
)

// MetaHandler serves the quote and the form vocabularies.
type MetaHandler struct {
	App *app.App
}

type categoryOption struct {
	Name model.Category `json:"name"`
	XP   int            `json:"xp"`
}

type optionsResponse struct {
	Categories   []categoryOption    `json:"categories"`
	PickupPoints []model.PickupPoint `json:"pickupPoints"`
	Statuses     []model.ItemStatus  `json:"statuses"`
}

// Options handles GET /api/options.
func (h *MetaHandler) Options(w http.ResponseWriter, r *http.Request) {
	resp := optionsResponse{
		PickupPoints: model.PickupPoints,
		Statuses:     []model.ItemStatus{model.StatusAvailable, model.StatusRequested, model.StatusPickedUp},
	}
	for _, c := range model.Categories {
		resp.Categories = append(resp.Categories, categoryOption{Name: c, XP: c.XP()})
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Quote handles GET /api/quote. It always succeeds; failures come back as
// a fallback message.
func (h *MetaHandler) Quote(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"quote": h.App.Quote(r.Context())})
}
