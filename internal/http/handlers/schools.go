package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shuletrack/internal/config"
	"shuletrack/internal/domain/school"
	"shuletrack/internal/services/data"

	"github.com/go-chi/chi/v5"
)

// ListSchools handles GET /api/schools.
func ListSchools(svc *data.Service, cfg config.Cfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := school.Filter{
			DistrictID: queryInt64(r, "district_id"),
			BlockID:    queryInt64(r, "block_id"),
			Status:     school.Status(r.URL.Query().Get("status")),
			Search:     r.URL.Query().Get("search"),
		}

		res, err := svc.ListSchools(r.Context(), f, parseListQuery(r))
		if err != nil {
			respondServerError(w, cfg.App.Env, err)
			return
		}
		respondList(w, res.Schools, res.Pagination)
	}
}

// GetSchool handles GET /api/schools/{id}.
func GetSchool(svc *data.Service, cfg config.Cfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusNotFound, "School not found")
			return
		}

		sc, err := svc.GetSchool(r.Context(), id)
		if err != nil {
			if errors.Is(err, data.ErrNotFound) {
				respondError(w, http.StatusNotFound, "School not found")
				return
			}
			respondServerError(w, cfg.App.Env, err)
			return
		}
		respondData(w, sc)
	}
}
