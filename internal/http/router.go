package httpx

import (
	"net/http"
	"time"

	"shuletrack/internal/config"
	"shuletrack/internal/http/handlers"
	middlewarex "shuletrack/internal/http/middleware"
	"shuletrack/internal/metrics"
	"shuletrack/internal/services/data"
	dashsvc "shuletrack/internal/services/dashboard"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDependencies holds all dependencies for the HTTP router.
type RouterDependencies struct {
	Config           config.Cfg
	DataService      *data.Service
	DashboardService *dashsvc.Service
	Metrics          *metrics.Metrics
	StartedAt        time.Time
}

// NewRouter creates the HTTP router. The API is read-only and
// unauthenticated; every response uses the success/error envelope.
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middlewarex.RequestLogger)
	r.Use(middlewarex.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/health", handlers.Health(deps.Config, deps.StartedAt))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/schools", handlers.ListSchools(deps.DataService, deps.Config))
		r.Get("/schools/{id}", handlers.GetSchool(deps.DataService, deps.Config))
		r.Get("/students", handlers.ListStudents(deps.DataService, deps.Config))
		r.Get("/students/{id}", handlers.GetStudent(deps.DataService, deps.Config))
		r.Get("/dashboard/stats", handlers.DashboardStats(deps.DashboardService, deps.Config))
		r.Get("/dashboard/kpis", handlers.DashboardKPIs(deps.DashboardService, deps.Config))
	})

	r.NotFound(handlers.NotFound())
	r.MethodNotAllowed(handlers.MethodNotAllowed())

	return r
}
