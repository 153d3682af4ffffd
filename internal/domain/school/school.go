package school

import "time"

// School represents a registered school with its location hierarchy
// (district → block) and a derived active-student count.
type School struct {
	ID            int64     `json:"id"`
	Code          string    `json:"school_code"`
	Name          string    `json:"name"`
	DistrictID    int64     `json:"district_id"`
	DistrictName  string    `json:"district_name"`
	BlockID       int64     `json:"block_id"`
	BlockName     string    `json:"block_name"`
	Category      string    `json:"category"`
	Management    string    `json:"management"`
	Status        Status    `json:"status"`
	TotalStudents int       `json:"total_students"`
	CreatedAt     time.Time `json:"created_at"`
}

// Status represents the operational status of a school.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusMerged   Status = "Merged"
	StatusClosed   Status = "Closed"
)

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusMerged, StatusClosed:
		return true
	}
	return false
}

// Filter holds the optional predicates for school listings.
// Zero values mean "not filtered".
type Filter struct {
	DistrictID int64
	BlockID    int64
	Status     Status
	Search     string
}

// Normalize applies the default status filter. Listings show active
// schools unless the caller asks for a specific status.
func (f *Filter) Normalize() {
	if f.Status == "" {
		f.Status = StatusActive
	}
}
