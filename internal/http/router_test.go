package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shuletrack/internal/config"
	dashdom "shuletrack/internal/domain/dashboard"
	"shuletrack/internal/domain/school"
	"shuletrack/internal/domain/student"
	"shuletrack/internal/services/data"
	dashsvc "shuletrack/internal/services/dashboard"
	"shuletrack/internal/store/repositories"
)

type fakeSchoolRepo struct {
	matching int // rows the filter matches
	err      error
}

func (r *fakeSchoolRepo) Count(ctx context.Context, f school.Filter) (int, error) {
	return r.matching, r.err
}

func (r *fakeSchoolRepo) List(ctx context.Context, f school.Filter, limit, offset int) ([]*school.School, error) {
	if r.err != nil {
		return nil, r.err
	}
	remaining := r.matching - offset
	if remaining < 0 {
		remaining = 0
	}
	n := limit
	if remaining < n {
		n = remaining
	}
	out := make([]*school.School, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &school.School{
			ID:   int64(offset + i + 1),
			Name: fmt.Sprintf("Public School %d", offset+i+1),
		})
	}
	return out, nil
}

func (r *fakeSchoolRepo) FindByID(ctx context.Context, id int64) (*school.School, error) {
	if id == 1 {
		return &school.School{ID: 1, Name: "Tumaini Primary", Status: school.StatusActive}, nil
	}
	return nil, repositories.ErrNotFound
}

type fakeStudentRepo struct{}

func (r *fakeStudentRepo) Count(ctx context.Context, f student.Filter) (int, error) {
	return 0, nil
}

func (r *fakeStudentRepo) List(ctx context.Context, f student.Filter, limit, offset int) ([]*student.Student, error) {
	return []*student.Student{}, nil
}

func (r *fakeStudentRepo) FindByID(ctx context.Context, id int64) (*student.Student, error) {
	if id == 1 {
		return &student.Student{ID: 1, FirstName: "Amina", LastName: "Odhiambo"}, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) RecentAttendance(ctx context.Context, studentID int64, n int) ([]student.AttendanceRecord, error) {
	return []student.AttendanceRecord{{Status: "Present"}}, nil
}

type fakeDashboardRepo struct{}

func (r *fakeDashboardRepo) Stats(ctx context.Context) (*dashdom.Stats, error) {
	// A database with no districts yields zeros and an empty
	// breakdown, never an error.
	return &dashdom.Stats{DistrictBreakdown: []dashdom.DistrictBreakdown{}}, nil
}

func (r *fakeDashboardRepo) KPIs(ctx context.Context) (*dashdom.KPIs, error) {
	return &dashdom.KPIs{EnrollmentTrend: []dashdom.TrendPoint{}}, nil
}

func newTestServer(t *testing.T, schoolRepo *fakeSchoolRepo, env string) *httptest.Server {
	t.Helper()
	cfg := config.Cfg{App: config.AppCfg{Env: env, Port: "0"}}
	r := NewRouter(RouterDependencies{
		Config:           cfg,
		DataService:      data.NewService(schoolRepo, &fakeStudentRepo{}),
		DashboardService: dashsvc.NewService(&fakeDashboardRepo{}, nil, time.Second),
		StartedAt:        time.Now(),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestListSchoolsPaginationEnvelope(t *testing.T) {
	srv := newTestServer(t, &fakeSchoolRepo{matching: 45}, "test")

	var body struct {
		Success    bool            `json:"success"`
		Data       []school.School `json:"data"`
		Pagination data.Pagination `json:"pagination"`
	}
	code := getJSON(t, srv.URL+"/api/schools?page=2&limit=20&search=Public", &body)

	if code != http.StatusOK || !body.Success {
		t.Fatalf("status=%d success=%v", code, body.Success)
	}
	want := data.Pagination{Page: 2, Limit: 20, Total: 45, Pages: 3}
	if body.Pagination != want {
		t.Fatalf("pagination = %+v, want %+v", body.Pagination, want)
	}
	if len(body.Data) != 20 {
		t.Fatalf("data length = %d, want 20", len(body.Data))
	}
}

func TestListSchoolsMalformedPageFallsBack(t *testing.T) {
	srv := newTestServer(t, &fakeSchoolRepo{matching: 5}, "test")

	var body struct {
		Success    bool            `json:"success"`
		Pagination data.Pagination `json:"pagination"`
	}
	code := getJSON(t, srv.URL+"/api/schools?page=abc&limit=xyz", &body)

	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body.Pagination.Page != 1 || body.Pagination.Limit != data.DefaultSchoolLimit {
		t.Fatalf("pagination = %+v, want defaults", body.Pagination)
	}
}

func TestGetStudentNotFound(t *testing.T) {
	srv := newTestServer(t, &fakeSchoolRepo{}, "test")

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	code := getJSON(t, srv.URL+"/api/students/999999", &body)

	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if body.Success || body.Error != "Student not found" {
		t.Fatalf("body = %+v", body)
	}
}

func TestGetStudentIncludesAttendance(t *testing.T) {
	srv := newTestServer(t, &fakeSchoolRepo{}, "test")

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Student    student.Student            `json:"student"`
			Attendance []student.AttendanceRecord `json:"attendance"`
		} `json:"data"`
	}
	code := getJSON(t, srv.URL+"/api/students/1", &body)

	if code != http.StatusOK || !body.Success {
		t.Fatalf("status=%d body=%+v", code, body)
	}
	if body.Data.Student.FirstName != "Amina" || len(body.Data.Attendance) != 1 {
		t.Fatalf("data = %+v", body.Data)
	}
}

func TestDashboardStatsZeroDistricts(t *testing.T) {
	srv := newTestServer(t, &fakeSchoolRepo{}, "test")

	var body struct {
		Success bool          `json:"success"`
		Data    dashdom.Stats `json:"data"`
	}
	code := getJSON(t, srv.URL+"/api/dashboard/stats", &body)

	if code != http.StatusOK || !body.Success {
		t.Fatalf("status=%d success=%v", code, body.Success)
	}
	if body.Data.Totals.Districts != 0 {
		t.Fatalf("districts = %d, want 0", body.Data.Totals.Districts)
	}
	if body.Data.DistrictBreakdown == nil || len(body.Data.DistrictBreakdown) != 0 {
		t.Fatalf("district_breakdown = %v, want []", body.Data.DistrictBreakdown)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeSchoolRepo{}, "test")

	var body struct {
		Status      string `json:"status"`
		Timestamp   string `json:"timestamp"`
		Uptime      int64  `json:"uptime"`
		Environment string `json:"environment"`
	}
	code := getJSON(t, srv.URL+"/health", &body)

	if code != http.StatusOK || body.Status != "ok" || body.Environment != "test" {
		t.Fatalf("status=%d body=%+v", code, body)
	}
	if body.Timestamp == "" {
		t.Fatal("timestamp missing")
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	srv := newTestServer(t, &fakeSchoolRepo{}, "test")

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	code := getJSON(t, srv.URL+"/api/nope", &body)

	if code != http.StatusNotFound || body.Success {
		t.Fatalf("status=%d body=%+v", code, body)
	}
	if body.Error == "" {
		t.Fatal("error message missing")
	}
}

func TestServerFaultHidesDetailOutsideDevelopment(t *testing.T) {
	srv := newTestServer(t, &fakeSchoolRepo{err: errors.New("pq: password authentication failed")}, "production")

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	code := getJSON(t, srv.URL+"/api/schools", &body)

	if code != http.StatusInternalServerError || body.Success {
		t.Fatalf("status=%d body=%+v", code, body)
	}
	if body.Error != "internal server error" || strings.Contains(body.Error, "password") {
		t.Fatalf("leaked detail: %q", body.Error)
	}
}
