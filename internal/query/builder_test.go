package query

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuilderNoPredicates(t *testing.T) {
	b := New("schools s").Columns("s.id, s.name").OrderBy("s.name ASC, s.id ASC")

	sql, args := b.CountSQL()
	if sql != "SELECT COUNT(*) FROM schools s" {
		t.Fatalf("count sql = %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("count args = %v", args)
	}

	sql, args = b.DataSQL(20, 0)
	want := "SELECT s.id, s.name FROM schools s ORDER BY s.name ASC, s.id ASC LIMIT $1 OFFSET $2"
	if sql != want {
		t.Fatalf("data sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{20, 0}) {
		t.Fatalf("data args = %v", args)
	}
}

func TestBuilderSharedPredicates(t *testing.T) {
	b := New("students st").
		Columns("st.id").
		Join("JOIN schools s ON s.id = st.school_id").
		Where("st.school_id = ?", int64(7)).
		Where("st.status = ?", "Active").
		OrderBy("st.last_name ASC, st.first_name ASC, st.id ASC")

	countSQL, countArgs := b.CountSQL()
	wantCount := "SELECT COUNT(*) FROM students st JOIN schools s ON s.id = st.school_id" +
		" WHERE st.school_id = $1 AND st.status = $2"
	if countSQL != wantCount {
		t.Fatalf("count sql = %q, want %q", countSQL, wantCount)
	}
	if !reflect.DeepEqual(countArgs, []any{int64(7), "Active"}) {
		t.Fatalf("count args = %v", countArgs)
	}

	dataSQL, dataArgs := b.DataSQL(50, 100)
	wantData := "SELECT st.id FROM students st JOIN schools s ON s.id = st.school_id" +
		" WHERE st.school_id = $1 AND st.status = $2" +
		" ORDER BY st.last_name ASC, st.first_name ASC, st.id ASC LIMIT $3 OFFSET $4"
	if dataSQL != wantData {
		t.Fatalf("data sql = %q, want %q", dataSQL, wantData)
	}
	if !reflect.DeepEqual(dataArgs, []any{int64(7), "Active", 50, 100}) {
		t.Fatalf("data args = %v", dataArgs)
	}
}

func TestBuilderSearch(t *testing.T) {
	b := New("schools s").
		Columns("s.id").
		Search("Public", "s.name", "s.school_code")

	sql, args := b.CountSQL()
	want := "SELECT COUNT(*) FROM schools s WHERE (s.name ILIKE $1 OR s.school_code ILIKE $2)"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"%Public%", "%Public%"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestBuilderSearchBlankIsNoop(t *testing.T) {
	b := New("schools s").Columns("s.id").Search("   ", "s.name")
	sql, args := b.CountSQL()
	if sql != "SELECT COUNT(*) FROM schools s" {
		t.Fatalf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

// Filters compose as a pure AND, so the order they are applied in must
// not change the predicate set.
func TestBuilderFilterOrderIndependent(t *testing.T) {
	statusFirst := New("schools s").Columns("s.id").
		Where("s.status = ?", "Active").
		Search("Public", "s.name", "s.school_code")
	searchFirst := New("schools s").Columns("s.id").
		Search("Public", "s.name", "s.school_code").
		Where("s.status = ?", "Active")

	sqlA, argsA := statusFirst.CountSQL()
	sqlB, argsB := searchFirst.CountSQL()

	// Same predicates, same arguments, only ordering within the AND
	// differs; both must select the same row set.
	if len(argsA) != len(argsB) {
		t.Fatalf("arg counts differ: %v vs %v", argsA, argsB)
	}
	for _, frag := range []string{"s.status = $", "s.name ILIKE $", "s.school_code ILIKE $"} {
		if !strings.Contains(sqlA, frag) || !strings.Contains(sqlB, frag) {
			t.Fatalf("missing predicate %q in %q / %q", frag, sqlA, sqlB)
		}
	}
}
