package student

import "time"

// Student represents an enrolled student.
type Student struct {
	ID             int64     `json:"id"`
	AdmissionNo    string    `json:"admission_no"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	SchoolID       int64     `json:"school_id"`
	SchoolName     string    `json:"school_name"`
	ClassNumber    int       `json:"class_number"`
	Section        string    `json:"section"`
	Gender         string    `json:"gender"`
	Status         Status    `json:"status"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// Status represents the enrollment status of a student.
type Status string

const (
	StatusActive      Status = "Active"
	StatusTransferred Status = "Transferred"
	StatusDropped     Status = "Dropped"
	StatusGraduated   Status = "Graduated"
)

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusTransferred, StatusDropped, StatusGraduated:
		return true
	}
	return false
}

// AttendanceRecord is one day's attendance entry for a student.
// Rows live in the month-partitioned student_attendance table; the
// partitioning is invisible at this level.
type AttendanceRecord struct {
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
	Remarks string    `json:"remarks,omitempty"`
}

// Filter holds the optional predicates for student listings.
// Zero values mean "not filtered".
type Filter struct {
	SchoolID    int64
	ClassNumber int
	Section     string
	Status      Status
	Search      string
}

// Normalize applies the default status filter.
func (f *Filter) Normalize() {
	if f.Status == "" {
		f.Status = StatusActive
	}
}
