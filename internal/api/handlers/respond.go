package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/uploadai/uploadai/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is the single place application faults become HTTP responses.
// User-facing faults keep their message; everything else is logged and
// answered with an opaque server error.
func writeError(w http.ResponseWriter, err error) {
	if apperr.UserFacing(err) {
		var e *apperr.Error
		errors.As(err, &e)
		writeJSON(w, apperr.HTTPStatus(err), map[string]string{"error": e.Message})
		return
	}

	slog.Error("request failed", "error", err)
	writeJSON(w, apperr.HTTPStatus(err), map[string]string{"error": "server error"})
}
