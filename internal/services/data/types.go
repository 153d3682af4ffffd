package data

// Default page sizes per entity.
const (
	DefaultSchoolLimit  = 20
	DefaultStudentLimit = 50
	MaxLimit            = 200
)

// ListQuery carries page/limit for a paginated list request.
type ListQuery struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Normalize validates and clamps the query in place. Missing or
// nonsensical values fall back to page 1 and the entity default limit;
// the limit is capped so a request can never force an unbounded scan.
func (q *ListQuery) Normalize(defaultLimit int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// Offset returns the row offset for the normalized query.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination is the envelope returned alongside every list result.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the envelope for a total row count.
// An empty result has zero pages.
func NewPagination(q ListQuery, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}
	return Pagination{Page: q.Page, Limit: q.Limit, Total: total, Pages: pages}
}
