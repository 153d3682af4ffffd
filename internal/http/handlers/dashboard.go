package handlers

import (
	"net/http"

	"shuletrack/internal/config"
	dashsvc "shuletrack/internal/services/dashboard"
)

// DashboardStats handles GET /api/dashboard/stats.
func DashboardStats(svc *dashsvc.Service, cfg config.Cfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Stats(r.Context())
		if err != nil {
			respondServerError(w, cfg.App.Env, err)
			return
		}
		respondData(w, st)
	}
}

// DashboardKPIs handles GET /api/dashboard/kpis.
func DashboardKPIs(svc *dashsvc.Service, cfg config.Cfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := svc.KPIs(r.Context())
		if err != nil {
			respondServerError(w, cfg.App.Env, err)
			return
		}
		respondData(w, k)
	}
}
