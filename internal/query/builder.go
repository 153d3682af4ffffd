package query

import (
	"fmt"
	"strings"
)

// Builder assembles a count query and a data query that share the same
// predicate set, so a list endpoint's total and page always come from
// identical WHERE clauses. Values are always bound as parameters;
// nothing from the request is spliced into the SQL text.
//
// There is deliberately no transaction around the pair: the count and
// the page may observe different data under concurrent writes.
type Builder struct {
	from    string
	columns string
	joins   []string
	preds   []string
	args    []any
	orderBy string
}

// New creates a builder for the given FROM clause (table plus alias).
func New(from string) *Builder {
	return &Builder{from: from}
}

// Columns sets the select list for the data query. The count query
// always selects COUNT(*).
func (b *Builder) Columns(cols string) *Builder {
	b.columns = cols
	return b
}

// Join appends a join clause, applied to both queries so predicates may
// reference joined tables.
func (b *Builder) Join(clause string) *Builder {
	b.joins = append(b.joins, clause)
	return b
}

// Where appends a predicate. expr uses one ? per argument; the
// placeholders are renumbered to $n when the SQL is built.
func (b *Builder) Where(expr string, args ...any) *Builder {
	b.preds = append(b.preds, expr)
	b.args = append(b.args, args...)
	return b
}

// Search appends a case-insensitive free-text predicate matching any of
// the given columns (logical OR). A blank term is a no-op.
func (b *Builder) Search(term string, columns ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return b
	}
	parts := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		parts[i] = col + " ILIKE ?"
		args[i] = "%" + term + "%"
	}
	return b.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// OrderBy sets the data query ordering. Callers must include a unique
// tie-break column so pagination is stable.
func (b *Builder) OrderBy(clause string) *Builder {
	b.orderBy = clause
	return b
}

// CountSQL returns the count query and its arguments.
func (b *Builder) CountSQL() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(b.from)
	b.writeJoins(&sb)
	b.writeWhere(&sb)
	return numberPlaceholders(sb.String()), b.args
}

// DataSQL returns the page query and its arguments. The limit and
// offset are appended after the shared predicate arguments.
func (b *Builder) DataSQL(limit, offset int) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.columns)
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	b.writeJoins(&sb)
	b.writeWhere(&sb)
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	n := len(b.args)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2))
	args := make([]any, 0, n+2)
	args = append(args, b.args...)
	args = append(args, limit, offset)
	return numberPlaceholders(sb.String()), args
}

func (b *Builder) writeJoins(sb *strings.Builder) {
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}
}

func (b *Builder) writeWhere(sb *strings.Builder) {
	if len(b.preds) == 0 {
		return
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(b.preds, " AND "))
}

// numberPlaceholders rewrites ? placeholders as $1, $2, ...
func numberPlaceholders(sql string) string {
	var sb strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			sb.WriteString(fmt.Sprintf("$%d", n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
