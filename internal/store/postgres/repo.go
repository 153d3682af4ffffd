package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo bundles the concrete repositories over one shared pool.
type Repo struct {
	db        *pgxpool.Pool
	Schools   *schoolRepository
	Students  *studentRepository
	Dashboard *dashboardRepository
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db:        db,
		Schools:   NewSchoolRepository(db),
		Students:  NewStudentRepository(db),
		Dashboard: NewDashboardRepository(db),
	}
}

// DB exposes the underlying pool for maintenance helpers.
func (r *Repo) DB() *pgxpool.Pool { return r.db }
