package handlers

import (
	"encoding/json"
	"net/http"

	"shuletrack/internal/services/data"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondData writes the success envelope for a single entity.
func respondData(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    payload,
	})
}

// respondList writes the success envelope with pagination metadata.
func respondList(w http.ResponseWriter, items any, p data.Pagination) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       items,
		"pagination": p,
	})
}

// respondError writes the generic error envelope.
func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
	})
}

// respondServerError logs the fault and answers 500. The underlying
// message is only exposed in development.
func respondServerError(w http.ResponseWriter, env string, err error) {
	log.Error().Err(err).Msg("request failed")
	msg := "internal server error"
	if env == "development" {
		msg = err.Error()
	}
	respondError(w, http.StatusInternalServerError, msg)
}

// NotFound is the catch-all for unknown routes.
func NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "route not found")
	}
}

// MethodNotAllowed answers unsupported methods on known routes.
func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
