package postgres

import (
	"context"
	"errors"

	"shuletrack/internal/domain/student"
	"shuletrack/internal/query"
	"shuletrack/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `st.id, st.admission_no, st.first_name, st.last_name,
		st.school_id, s.name, st.class_number, st.section, st.gender,
		st.status, st.enrollment_date`

// studentRepository implements repositories.StudentRepository over pgx.
type studentRepository struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) *studentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) builder(f student.Filter) *query.Builder {
	b := query.New("students st").
		Columns(studentColumns).
		Join("JOIN schools s ON s.id = st.school_id").
		OrderBy("st.last_name ASC, st.first_name ASC, st.id ASC")

	if f.SchoolID > 0 {
		b.Where("st.school_id = ?", f.SchoolID)
	}
	if f.ClassNumber > 0 {
		b.Where("st.class_number = ?", f.ClassNumber)
	}
	if f.Section != "" {
		b.Where("st.section = ?", f.Section)
	}
	if f.Status != "" {
		b.Where("st.status = ?", string(f.Status))
	}
	b.Search(f.Search, "st.first_name || ' ' || st.last_name", "st.admission_no")
	return b
}

// Count returns the number of students matching the filter.
func (r *studentRepository) Count(ctx context.Context, f student.Filter) (int, error) {
	sql, args := r.builder(f).CountSQL()
	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// List returns one page of students ordered by last name, first name,
// id as tie-break.
func (r *studentRepository) List(ctx context.Context, f student.Filter, limit, offset int) ([]*student.Student, error) {
	sql, args := r.builder(f).DataSQL(limit, offset)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*student.Student{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// FindByID finds a student by id.
func (r *studentRepository) FindByID(ctx context.Context, id int64) (*student.Student, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students st
		JOIN schools s ON s.id = st.school_id
		WHERE st.id = $1`, id)

	st, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

// RecentAttendance returns the student's last n attendance records,
// newest first. The monthly partitioning of student_attendance is
// transparent here.
func (r *studentRepository) RecentAttendance(ctx context.Context, studentID int64, n int) ([]student.AttendanceRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT attendance_date, status, COALESCE(remarks, '')
		FROM student_attendance
		WHERE student_id = $1
		ORDER BY attendance_date DESC
		LIMIT $2`, studentID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []student.AttendanceRecord{}
	for rows.Next() {
		var rec student.AttendanceRecord
		if err := rows.Scan(&rec.Date, &rec.Status, &rec.Remarks); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanStudent(row pgx.Row) (*student.Student, error) {
	var st student.Student
	err := row.Scan(
		&st.ID, &st.AdmissionNo, &st.FirstName, &st.LastName,
		&st.SchoolID, &st.SchoolName, &st.ClassNumber, &st.Section,
		&st.Gender, &st.Status, &st.EnrollmentDate)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
