// Package render maps API payloads onto the monitor's text UI: KPI
// cards, table rows, and pagination controls. Everything here is pure;
// the caller owns the writer.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"shuletrack/internal/domain/dashboard"
	"shuletrack/internal/domain/school"
	"shuletrack/internal/domain/student"
	"shuletrack/internal/services/data"
)

// PageControls describes the pagination widget for a list view: a
// window of page numbers centered on the current page, with prev/next
// disabled at the boundaries.
type PageControls struct {
	Prev    bool
	Next    bool
	Window  []int
	Current int
	Pages   int
}

// pageWindowRadius is the number of page links shown on each side of
// the current page.
const pageWindowRadius = 2

// NewPageControls computes the widget state from the envelope.
func NewPageControls(p data.Pagination) PageControls {
	c := PageControls{
		Prev:    p.Page > 1,
		Next:    p.Page < p.Pages,
		Current: p.Page,
		Pages:   p.Pages,
	}
	lo := p.Page - pageWindowRadius
	if lo < 1 {
		lo = 1
	}
	hi := p.Page + pageWindowRadius
	if hi > p.Pages {
		hi = p.Pages
	}
	for n := lo; n <= hi; n++ {
		c.Window = append(c.Window, n)
	}
	return c
}

// Format renders the controls as a single line, e.g.
// "< prev  [1] 2 3  next >  (45 rows)".
func (c PageControls) Format(total int) string {
	var sb strings.Builder
	if c.Prev {
		sb.WriteString("< prev  ")
	} else {
		sb.WriteString("        ")
	}
	for i, n := range c.Window {
		if i > 0 {
			sb.WriteString(" ")
		}
		if n == c.Current {
			fmt.Fprintf(&sb, "[%d]", n)
		} else {
			fmt.Fprintf(&sb, "%d", n)
		}
	}
	if c.Next {
		sb.WriteString("  next >")
	}
	fmt.Fprintf(&sb, "  (%d rows)", total)
	return sb.String()
}

// KPICards lays out the dashboard numbers as labelled cards.
func KPICards(w io.Writer, st *dashboard.Stats, k *dashboard.KPIs) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Schools\t%d\n", st.Totals.Schools)
	fmt.Fprintf(tw, "Students\t%d\n", st.Totals.Students)
	fmt.Fprintf(tw, "Teachers\t%d\n", st.Totals.Teachers)
	fmt.Fprintf(tw, "Districts\t%d\n", st.Totals.Districts)
	fmt.Fprintf(tw, "Enrolled (30d)\t%d\n", st.RecentEnrollments)
	fmt.Fprintf(tw, "Attendance today\t%d present / %d absent / %d late / %d excused\n",
		st.AttendanceToday.Present, st.AttendanceToday.Absent,
		st.AttendanceToday.Late, st.AttendanceToday.Excused)
	fmt.Fprintf(tw, "Attendance rate (30d)\t%.1f%%\n", k.AttendanceRate)
	fmt.Fprintf(tw, "School size avg/min/max\t%.1f / %d / %d\n",
		k.SchoolSize.Average, k.SchoolSize.Min, k.SchoolSize.Max)
	tw.Flush()

	if len(k.EnrollmentTrend) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Enrollment trend:")
		for _, tp := range k.EnrollmentTrend {
			fmt.Fprintf(w, "  %s  %d\n", tp.Month, tp.Count)
		}
	}
	if len(st.DistrictBreakdown) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Districts:")
		dtw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, d := range st.DistrictBreakdown {
			fmt.Fprintf(dtw, "  %s\t%d schools\t%d students\n", d.DistrictName, d.Schools, d.Students)
		}
		dtw.Flush()
	}
}

// SchoolRows maps schools onto table rows.
func SchoolRows(schools []school.School) [][]string {
	rows := make([][]string, 0, len(schools))
	for _, s := range schools {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID),
			s.Code,
			s.Name,
			s.DistrictName,
			s.BlockName,
			string(s.Status),
			fmt.Sprintf("%d", s.TotalStudents),
		})
	}
	return rows
}

// SchoolHeader is the column set matching SchoolRows.
var SchoolHeader = []string{"ID", "CODE", "NAME", "DISTRICT", "BLOCK", "STATUS", "STUDENTS"}

// StudentRows maps students onto table rows.
func StudentRows(students []student.Student) [][]string {
	rows := make([][]string, 0, len(students))
	for _, st := range students {
		rows = append(rows, []string{
			fmt.Sprintf("%d", st.ID),
			st.AdmissionNo,
			st.LastName + ", " + st.FirstName,
			st.SchoolName,
			fmt.Sprintf("%d", st.ClassNumber),
			st.Section,
			string(st.Status),
		})
	}
	return rows
}

// StudentHeader is the column set matching StudentRows.
var StudentHeader = []string{"ID", "ADM NO", "NAME", "SCHOOL", "CLASS", "SEC", "STATUS"}

// Table writes a header and rows through a tabwriter.
func Table(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}
