package enrollment

import "time"

// Person is an enrolled individual the matcher reconciles against. ID is
// stable and opaque to callers; Email is stored lowercased.
type Person struct {
	ID        int64
	Name      string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AttendanceRecord is one finalized assignment ready for persistence.
type AttendanceRecord struct {
	PersonID   int64
	Status     string
	Notes      string
	VerifiedBy string
}

// StatusPresent is the attendance status recorded for a matched person.
const StatusPresent = "present"

// Session identifies one import run.
type Session struct {
	ID         string
	SourceFile string
	CreatedAt  time.Time
}
