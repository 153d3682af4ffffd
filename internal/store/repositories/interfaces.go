package repositories

import (
	"context"
	"errors"

	"shuletrack/internal/domain/dashboard"
	"shuletrack/internal/domain/school"
	"shuletrack/internal/domain/student"
)

// ErrNotFound is returned when a lookup by id matches no row.
// Store implementations map their driver's no-rows error to this.
var ErrNotFound = errors.New("not found")

// SchoolRepository defines the contract for school data access.
// Count and List take the same filter; implementations must apply
// identical predicates to both so pagination totals stay consistent.
type SchoolRepository interface {
	Count(ctx context.Context, f school.Filter) (int, error)
	List(ctx context.Context, f school.Filter, limit, offset int) ([]*school.School, error)
	FindByID(ctx context.Context, id int64) (*school.School, error)
}

// StudentRepository defines the contract for student data access.
type StudentRepository interface {
	Count(ctx context.Context, f student.Filter) (int, error)
	List(ctx context.Context, f student.Filter, limit, offset int) ([]*student.Student, error)
	FindByID(ctx context.Context, id int64) (*student.Student, error)
	RecentAttendance(ctx context.Context, studentID int64, n int) ([]student.AttendanceRecord, error)
}

// DashboardRepository defines the contract for dashboard aggregates.
type DashboardRepository interface {
	Stats(ctx context.Context) (*dashboard.Stats, error)
	KPIs(ctx context.Context) (*dashboard.KPIs, error)
}
