package render

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"shuletrack/internal/domain/dashboard"
	"shuletrack/internal/domain/school"
	"shuletrack/internal/services/data"
)

func TestPageControlsWindow(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pages      int
		wantPrev   bool
		wantNext   bool
		wantWindow []int
	}{
		{"middle", 5, 10, true, true, []int{3, 4, 5, 6, 7}},
		{"first page", 1, 10, false, true, []int{1, 2, 3}},
		{"second page", 2, 10, true, true, []int{1, 2, 3, 4}},
		{"last page", 10, 10, true, false, []int{8, 9, 10}},
		{"single page", 1, 1, false, false, []int{1}},
		{"no pages", 1, 0, false, false, nil},
		{"near end", 9, 10, true, true, []int{7, 8, 9, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPageControls(data.Pagination{Page: tt.page, Pages: tt.pages})
			if c.Prev != tt.wantPrev {
				t.Errorf("Prev = %v, want %v", c.Prev, tt.wantPrev)
			}
			if c.Next != tt.wantNext {
				t.Errorf("Next = %v, want %v", c.Next, tt.wantNext)
			}
			if !reflect.DeepEqual(c.Window, tt.wantWindow) {
				t.Errorf("Window = %v, want %v", c.Window, tt.wantWindow)
			}
		})
	}
}

func TestPageControlsFormat(t *testing.T) {
	c := NewPageControls(data.Pagination{Page: 2, Pages: 3})
	got := c.Format(45)
	if !strings.Contains(got, "[2]") {
		t.Errorf("current page not highlighted: %q", got)
	}
	if !strings.Contains(got, "< prev") || !strings.Contains(got, "next >") {
		t.Errorf("controls missing: %q", got)
	}
	if !strings.Contains(got, "(45 rows)") {
		t.Errorf("total label missing: %q", got)
	}
}

func TestSchoolRows(t *testing.T) {
	rows := SchoolRows([]school.School{
		{ID: 7, Code: "SCH007", Name: "Tumaini Primary", DistrictName: "Kilifi",
			BlockName: "North", Status: school.StatusActive, TotalStudents: 412},
	})
	want := [][]string{{"7", "SCH007", "Tumaini Primary", "Kilifi", "North", "Active", "412"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	if len(SchoolHeader) != len(rows[0]) {
		t.Fatalf("header/row width mismatch: %d vs %d", len(SchoolHeader), len(rows[0]))
	}
}

func TestKPICardsZeroDistricts(t *testing.T) {
	var buf bytes.Buffer
	st := &dashboard.Stats{DistrictBreakdown: []dashboard.DistrictBreakdown{}}
	k := &dashboard.KPIs{}
	KPICards(&buf, st, k)

	out := buf.String()
	if !strings.Contains(out, "Districts") {
		t.Fatalf("missing totals card: %q", out)
	}
	if strings.Contains(out, "Districts:") {
		t.Fatalf("empty breakdown should render no district section: %q", out)
	}
}
