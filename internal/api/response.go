package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/erazemk/educycle/internal/app"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// appError maps an App error to a status code and writes it.
func appError(w http.ResponseWriter, r *http.Request, err error) {
	jsonError(w, app.HTTPStatus(err), app.Message(err))
	if !app.Known(err) {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
