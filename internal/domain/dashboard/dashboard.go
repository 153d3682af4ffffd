package dashboard

import "time"

// Totals are the headline entity counts shown on the dashboard.
type Totals struct {
	Schools   int `json:"schools"`
	Students  int `json:"students"`
	Teachers  int `json:"teachers"`
	Districts int `json:"districts"`
}

// AttendanceToday breaks down today's attendance records by status.
type AttendanceToday struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Excused int `json:"excused"`
}

// DistrictBreakdown is the per-district school/student roll-up.
type DistrictBreakdown struct {
	DistrictID   int64  `json:"district_id"`
	DistrictName string `json:"district_name"`
	Schools      int    `json:"schools"`
	Students     int    `json:"students"`
}

// Stats is the /api/dashboard/stats payload.
type Stats struct {
	Totals            Totals              `json:"totals"`
	AttendanceToday   AttendanceToday     `json:"attendance_today"`
	RecentEnrollments int                 `json:"recent_enrollments"`
	DistrictBreakdown []DistrictBreakdown `json:"district_breakdown"`
}

// TrendPoint is one month of the enrollment trend, keyed "YYYY-MM".
type TrendPoint struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// BackfillTrend pads a month-grouped trend to exactly months points
// ending at now's month, inserting zero counts where no rows existed.
// Months outside the window are dropped.
func BackfillTrend(points []TrendPoint, months int, now time.Time) []TrendPoint {
	counts := make(map[string]int, len(points))
	for _, p := range points {
		counts[p.Month] = p.Count
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(months - 1), 0)
	out := make([]TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0).Format("2006-01")
		out = append(out, TrendPoint{Month: m, Count: counts[m]})
	}
	return out
}

// SchoolSize summarizes active-student counts across schools.
type SchoolSize struct {
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

// KPIs is the /api/dashboard/kpis payload.
type KPIs struct {
	EnrollmentTrend []TrendPoint `json:"enrollment_trend"`
	AttendanceRate  float64      `json:"attendance_rate"`
	SchoolSize      SchoolSize   `json:"school_size"`
}
