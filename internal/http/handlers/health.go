package handlers

import (
	"net/http"
	"time"

	"shuletrack/internal/config"
)

// Health handles GET /health. Uptime is measured from the start time
// the application context was built with, not any ambient global.
func Health(cfg config.Cfg, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      int64(time.Since(startedAt).Seconds()),
			"environment": cfg.App.Env,
		})
	}
}
