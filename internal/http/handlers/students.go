package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shuletrack/internal/config"
	"shuletrack/internal/domain/student"
	"shuletrack/internal/services/data"

	"github.com/go-chi/chi/v5"
)

// ListStudents handles GET /api/students.
func ListStudents(svc *data.Service, cfg config.Cfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := student.Filter{
			SchoolID:    queryInt64(r, "school_id"),
			ClassNumber: queryInt(r, "class_number"),
			Section:     r.URL.Query().Get("section"),
			Status:      student.Status(r.URL.Query().Get("status")),
			Search:      r.URL.Query().Get("search"),
		}

		res, err := svc.ListStudents(r.Context(), f, parseListQuery(r))
		if err != nil {
			respondServerError(w, cfg.App.Env, err)
			return
		}
		respondList(w, res.Students, res.Pagination)
	}
}

// GetStudent handles GET /api/students/{id}. The payload includes the
// student's last 10 attendance records.
func GetStudent(svc *data.Service, cfg config.Cfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusNotFound, "Student not found")
			return
		}

		detail, err := svc.GetStudent(r.Context(), id)
		if err != nil {
			if errors.Is(err, data.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Student not found")
				return
			}
			respondServerError(w, cfg.App.Env, err)
			return
		}
		respondData(w, map[string]any{
			"student":    detail.Student,
			"attendance": detail.Attendance,
		})
	}
}
