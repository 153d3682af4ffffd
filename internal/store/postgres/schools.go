package postgres

import (
	"context"
	"errors"

	"shuletrack/internal/domain/school"
	"shuletrack/internal/query"
	"shuletrack/internal/store/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schoolColumns = `s.id, s.school_code, s.name, s.district_id, d.name,
		s.block_id, b.name, s.category, s.management, s.status,
		COALESCE(roll.cnt, 0), s.created_at`

// schoolRepository implements repositories.SchoolRepository over pgx.
type schoolRepository struct {
	db *pgxpool.Pool
}

func NewSchoolRepository(db *pgxpool.Pool) *schoolRepository {
	return &schoolRepository{db: db}
}

// builder assembles the shared count/data query for a filter. Both
// queries run against the same predicate set; there is no transaction
// around the pair, so totals may drift from the page under concurrent
// writes.
func (r *schoolRepository) builder(f school.Filter) *query.Builder {
	b := query.New("schools s").
		Columns(schoolColumns).
		Join("JOIN districts d ON d.id = s.district_id").
		Join("JOIN blocks b ON b.id = s.block_id").
		Join(`LEFT JOIN (SELECT school_id, COUNT(*) AS cnt
			FROM students WHERE status = 'Active'
			GROUP BY school_id) roll ON roll.school_id = s.id`).
		OrderBy("s.name ASC, s.id ASC")

	if f.DistrictID > 0 {
		b.Where("s.district_id = ?", f.DistrictID)
	}
	if f.BlockID > 0 {
		b.Where("s.block_id = ?", f.BlockID)
	}
	if f.Status != "" {
		b.Where("s.status = ?", string(f.Status))
	}
	b.Search(f.Search, "s.name", "s.school_code")
	return b
}

// Count returns the number of schools matching the filter.
func (r *schoolRepository) Count(ctx context.Context, f school.Filter) (int, error) {
	sql, args := r.builder(f).CountSQL()
	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// List returns one page of schools ordered by name, id as tie-break.
func (r *schoolRepository) List(ctx context.Context, f school.Filter, limit, offset int) ([]*school.School, error) {
	sql, args := r.builder(f).DataSQL(limit, offset)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schools := []*school.School{}
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

// FindByID finds a school by id.
func (r *schoolRepository) FindByID(ctx context.Context, id int64) (*school.School, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+schoolColumns+`
		FROM schools s
		JOIN districts d ON d.id = s.district_id
		JOIN blocks b ON b.id = s.block_id
		LEFT JOIN (SELECT school_id, COUNT(*) AS cnt
			FROM students WHERE status = 'Active'
			GROUP BY school_id) roll ON roll.school_id = s.id
		WHERE s.id = $1`, id)

	s, err := scanSchool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func scanSchool(row pgx.Row) (*school.School, error) {
	var s school.School
	err := row.Scan(
		&s.ID, &s.Code, &s.Name, &s.DistrictID, &s.DistrictName,
		&s.BlockID, &s.BlockName, &s.Category, &s.Management, &s.Status,
		&s.TotalStudents, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
