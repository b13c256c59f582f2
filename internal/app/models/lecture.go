package models

import (
	"encoding/json"
	"time"
)

// Lecture represents a single scheduled teaching session (batch) belonging to
// exactly one course. Its id is unique across the whole system, not just
// within the owning course, because cross-course projections key on it.
type Lecture struct {
	ID              int64                `json:"id" db:"id"`
	CourseID        int64                `json:"courseId" db:"course_id"`
	Title           string               `json:"title" db:"title" example:"Introduction to HTML"`
	Date            time.Time            `json:"date" db:"date"`
	DurationMinutes int                  `json:"duration" db:"duration_minutes" example:"60"`
	Instructor      InstructorAssignment `json:"instructorId" db:"instructor_id"`
}

// SameCalendarDay reports whether the lecture falls on the same calendar day
// as t. Days are compared in UTC; time-of-day and duration are ignored.
func (l *Lecture) SameCalendarDay(t time.Time) bool {
	y1, m1, d1 := l.Date.UTC().Date()
	y2, m2, d2 := t.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ProjectedLecture is a lecture flattened out of its owning course for the
// cross-course views, carrying the course name alongside.
type ProjectedLecture struct {
	Lecture
	CourseName string `json:"courseName"`
}

// InstructorAssignment is the assignment state of a lecture: either
// unassigned or assigned to one instructor. The zero value is unassigned.
// It serializes as a nullable instructor id.
type InstructorAssignment struct {
	instructorID int64
	assigned     bool
}

// Unassigned returns the unassigned state.
func Unassigned() InstructorAssignment {
	return InstructorAssignment{}
}

// AssignedTo returns an assignment to the given instructor.
func AssignedTo(instructorID int64) InstructorAssignment {
	return InstructorAssignment{instructorID: instructorID, assigned: true}
}

// IsAssigned reports whether an instructor is assigned.
func (a InstructorAssignment) IsAssigned() bool {
	return a.assigned
}

// InstructorID returns the assigned instructor id and whether one is set.
func (a InstructorAssignment) InstructorID() (int64, bool) {
	return a.instructorID, a.assigned
}

// Is reports whether the assignment references the given instructor.
func (a InstructorAssignment) Is(instructorID int64) bool {
	return a.assigned && a.instructorID == instructorID
}

// MarshalJSON encodes the assignment as the instructor id or null.
func (a InstructorAssignment) MarshalJSON() ([]byte, error) {
	if !a.assigned {
		return []byte("null"), nil
	}
	return json.Marshal(a.instructorID)
}

// UnmarshalJSON decodes null as unassigned and a number as an assignment.
func (a *InstructorAssignment) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Unassigned()
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*a = AssignedTo(id)
	return nil
}

// FromNullableID converts a nullable database id into an assignment.
func FromNullableID(id *int64) InstructorAssignment {
	if id == nil {
		return Unassigned()
	}
	return AssignedTo(*id)
}

// NullableID converts the assignment back into a nullable database id.
func (a InstructorAssignment) NullableID() *int64 {
	if !a.assigned {
		return nil
	}
	id := a.instructorID
	return &id
}
