package data

import (
	"context"
	"errors"

	"shuletrack/internal/domain/school"
	"shuletrack/internal/domain/student"
	"shuletrack/internal/store/repositories"
)

// ErrNotFound is re-exported so handlers do not import the store layer.
var ErrNotFound = repositories.ErrNotFound

// Service handles entity listing and detail retrieval.
type Service struct {
	schoolRepo  repositories.SchoolRepository
	studentRepo repositories.StudentRepository
}

// NewService creates a new data service.
func NewService(schoolRepo repositories.SchoolRepository, studentRepo repositories.StudentRepository) *Service {
	return &Service{
		schoolRepo:  schoolRepo,
		studentRepo: studentRepo,
	}
}

// SchoolList is a page of schools with its pagination envelope.
type SchoolList struct {
	Schools    []*school.School
	Pagination Pagination
}

// StudentList is a page of students with its pagination envelope.
type StudentList struct {
	Students   []*student.Student
	Pagination Pagination
}

// StudentDetail is a single student plus recent attendance history.
type StudentDetail struct {
	Student    *student.Student
	Attendance []student.AttendanceRecord
}

// ListSchools retrieves a filtered page of schools. The request is
// normalized first, so out-of-range page/limit values never reach the
// store. A page past the end returns an empty list with the true total.
func (s *Service) ListSchools(ctx context.Context, f school.Filter, q ListQuery) (*SchoolList, error) {
	q.Normalize(DefaultSchoolLimit)
	f.Normalize()

	total, err := s.schoolRepo.Count(ctx, f)
	if err != nil {
		return nil, &ServiceError{Op: "count_schools", Err: err}
	}
	schools, err := s.schoolRepo.List(ctx, f, q.Limit, q.Offset())
	if err != nil {
		return nil, &ServiceError{Op: "list_schools", Err: err}
	}
	return &SchoolList{Schools: schools, Pagination: NewPagination(q, total)}, nil
}

// GetSchool retrieves one school by id.
func (s *Service) GetSchool(ctx context.Context, id int64) (*school.School, error) {
	sc, err := s.schoolRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, &ServiceError{Op: "get_school", Err: err}
	}
	return sc, nil
}

// ListStudents retrieves a filtered page of students.
func (s *Service) ListStudents(ctx context.Context, f student.Filter, q ListQuery) (*StudentList, error) {
	q.Normalize(DefaultStudentLimit)
	f.Normalize()

	total, err := s.studentRepo.Count(ctx, f)
	if err != nil {
		return nil, &ServiceError{Op: "count_students", Err: err}
	}
	students, err := s.studentRepo.List(ctx, f, q.Limit, q.Offset())
	if err != nil {
		return nil, &ServiceError{Op: "list_students", Err: err}
	}
	return &StudentList{Students: students, Pagination: NewPagination(q, total)}, nil
}

// GetStudent retrieves one student with their last 10 attendance records.
func (s *Service) GetStudent(ctx context.Context, id int64) (*StudentDetail, error) {
	st, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, &ServiceError{Op: "get_student", Err: err}
	}
	att, err := s.studentRepo.RecentAttendance(ctx, id, 10)
	if err != nil {
		return nil, &ServiceError{Op: "student_attendance", Err: err}
	}
	return &StudentDetail{Student: st, Attendance: att}, nil
}

// ServiceError represents a data service error.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "data service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
