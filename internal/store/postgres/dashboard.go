package postgres

import (
	"context"
	"time"

	"shuletrack/internal/domain/dashboard"

	"github.com/jackc/pgx/v5/pgxpool"
)

// trendMonths is the span of the enrollment trend.
const trendMonths = 6

// dashboardRepository computes the dashboard aggregates. Every query is
// a plain single-statement read; the stats are approximate by design
// under concurrent writes.
type dashboardRepository struct {
	db *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *dashboardRepository {
	return &dashboardRepository{db: db}
}

// Stats gathers the headline dashboard numbers. All aggregates are
// empty-safe: a database with zero districts yields zero totals and an
// empty breakdown, never an error.
func (r *dashboardRepository) Stats(ctx context.Context) (*dashboard.Stats, error) {
	var st dashboard.Stats

	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM schools  WHERE status = 'Active'),
			(SELECT COUNT(*) FROM students WHERE status = 'Active'),
			(SELECT COUNT(*) FROM teachers WHERE status = 'Active'),
			(SELECT COUNT(*) FROM districts)`).
		Scan(&st.Totals.Schools, &st.Totals.Students, &st.Totals.Teachers, &st.Totals.Districts)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*) FILTER (WHERE status = 'Absent'),
			COUNT(*) FILTER (WHERE status = 'Late'),
			COUNT(*) FILTER (WHERE status = 'Excused')
		FROM student_attendance
		WHERE attendance_date = CURRENT_DATE`).
		Scan(&st.AttendanceToday.Present, &st.AttendanceToday.Absent,
			&st.AttendanceToday.Late, &st.AttendanceToday.Excused)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM students
		WHERE enrollment_date >= CURRENT_DATE - INTERVAL '30 days'`).
		Scan(&st.RecentEnrollments)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.name,
			COUNT(DISTINCT s.id),
			COUNT(stu.id)
		FROM districts d
		LEFT JOIN schools s  ON s.district_id = d.id AND s.status = 'Active'
		LEFT JOIN students stu ON stu.school_id = s.id AND stu.status = 'Active'
		GROUP BY d.id, d.name
		ORDER BY d.name ASC, d.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st.DistrictBreakdown = []dashboard.DistrictBreakdown{}
	for rows.Next() {
		var db dashboard.DistrictBreakdown
		if err := rows.Scan(&db.DistrictID, &db.DistrictName, &db.Schools, &db.Students); err != nil {
			return nil, err
		}
		st.DistrictBreakdown = append(st.DistrictBreakdown, db)
	}
	return &st, rows.Err()
}

// KPIs gathers the trend and ratio metrics.
func (r *dashboardRepository) KPIs(ctx context.Context) (*dashboard.KPIs, error) {
	var k dashboard.KPIs

	rows, err := r.db.Query(ctx, `
		SELECT to_char(date_trunc('month', enrollment_date), 'YYYY-MM') AS month,
			COUNT(*)
		FROM students
		WHERE enrollment_date >= date_trunc('month', CURRENT_DATE) - INTERVAL '5 months'
		GROUP BY 1
		ORDER BY 1 ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trend := []dashboard.TrendPoint{}
	for rows.Next() {
		var tp dashboard.TrendPoint
		if err := rows.Scan(&tp.Month, &tp.Count); err != nil {
			return nil, err
		}
		trend = append(trend, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The GROUP BY skips months with no enrollments; pad them back so
	// the trend always carries the full window.
	k.EnrollmentTrend = dashboard.BackfillTrend(trend, trendMonths, time.Now())

	var present, recorded int
	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Present'),
			COUNT(*)
		FROM student_attendance
		WHERE attendance_date >= CURRENT_DATE - INTERVAL '30 days'`).
		Scan(&present, &recorded)
	if err != nil {
		return nil, err
	}
	if recorded > 0 {
		k.AttendanceRate = float64(present) / float64(recorded) * 100
	}

	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(cnt), 0), COALESCE(MIN(cnt), 0), COALESCE(MAX(cnt), 0)
		FROM (SELECT COUNT(*) AS cnt
			FROM students WHERE status = 'Active'
			GROUP BY school_id) sizes`).
		Scan(&k.SchoolSize.Average, &k.SchoolSize.Min, &k.SchoolSize.Max)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
