package api

import (
	"io"
	"net/http"

	"github.com/erazemk/educycle/internal/app"
	"github.com/erazemk/educycle/internal/imaging"
	"github.com/erazemk/educycle/internal/model"
)

// ItemsHandler handles item endpoints.
type ItemsHandler struct {
	App *app.App
}

// itemView is an item plus the actions the caller may take on it.
type itemView struct {
	model.Item
	CanRequest      bool `json:"canRequest"`
	CanMarkPickedUp bool `json:"canMarkPickedUp"`
}

func newItemView(user *model.User, item *model.Item) itemView {
	return itemView{
		Item:            *item,
		CanRequest:      app.CanRequest(user, item),
		CanMarkPickedUp: app.CanMarkPickedUp(user, item),
	}
}

type pickupRequest struct {
	JuniorID string `json:"juniorId"`
}

// List handles GET /api/items. It returns the caller's dashboard, narrowed
// by the optional category and q query parameters.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.App)
	if !ok {
		return
	}

	filter := app.Filter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	}
	items, err := h.App.Dashboard(r.Context(), user, filter)
	if err != nil {
		appError(w, r, err)
		return
	}

	views := make([]itemView, 0, len(items))
	for i := range items {
		views = append(views, newItemView(user, &items[i]))
	}
	jsonResponse(w, http.StatusOK, views)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.App)
	if !ok {
		return
	}

	var req app.ShareInput
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.App.ShareItem(r.Context(), user.ID, req)
	if err != nil {
		appError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.App)
	if !ok {
		return
	}

	item, err := h.App.Item(r.Context(), r.PathValue("id"))
	if err != nil {
		appError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, newItemView(user, item))
}

// Request handles POST /api/items/{id}/request.
func (h *ItemsHandler) Request(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.App)
	if !ok {
		return
	}

	item, err := h.App.RequestItem(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		appError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Pickup handles POST /api/items/{id}/pickup. The body is optional.
func (h *ItemsHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.App)
	if !ok {
		return
	}

	var req pickupRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	item, err := h.App.MarkPickedUp(r.Context(), r.PathValue("id"), user.ID, req.JuniorID)
	if err != nil {
		appError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// UploadImage handles PUT /api/items/{id}/image with a multipart "image" file.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r, h.App)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<10)

	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	item, err := h.App.SetItemImage(r.Context(), r.PathValue("id"), user.ID, data)
	if err != nil {
		appError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	img, err := h.App.ItemImage(r.Context(), r.PathValue("id"))
	if err != nil {
		appError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", img.MIME)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(img.Data)
}
