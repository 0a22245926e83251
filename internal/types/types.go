// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the shell, storage, and validation layers can all import types without
// depending on each other.
package types

import "fmt"

// Student represents one row in the students table.
//
// The validate:"..." tags are rules checked by the go-playground/validator
// package before a row is inserted. "emailshape" is a custom rule
// registered in internal/validate — it accepts anything of the form
// something@something.something, which is deliberately looser than a full
// RFC email check.
type Student struct {
	ID        int64  `validate:"-"`
	Email     string `validate:"required,emailshape"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

// Record renders the student the way the listing flows print it:
//
//	1: Alice Lin (alice@example.com)
func (s Student) Record() string {
	return fmt.Sprintf("%d: %s %s (%s)", s.ID, s.FirstName, s.LastName, s.Email)
}

// Course represents one row in the courses table.
//
// Day is one of MON/TUE/WED/THU/FRI/SAT/SUN (enforced both here via the
// oneof tag and by a CHECK constraint in the schema). StartTime and
// EndTime are zero-padded 24-hour "HH:MM" strings — fixed width, so
// lexicographic order equals chronological order.
type Course struct {
	ID        int64  `validate:"-"`
	Code      string `validate:"required,uppercase"`
	Name      string `validate:"required"`
	Day       string `validate:"required,oneof=MON TUE WED THU FRI SAT SUN"`
	StartTime string `validate:"required,hhmm"`
	EndTime   string `validate:"required,hhmm"`
}

// Record renders the course with its day, for the list-courses flow:
//
//	CS101 — Intro CS (MON 09:00-10:00)
func (c Course) Record() string {
	return fmt.Sprintf("%s — %s (%s %s-%s)", c.Code, c.Name, c.Day, c.StartTime, c.EndTime)
}

// TimeRecord renders the course without its day, for the schedule-on-a-day
// flow where every row shares the same day:
//
//	CS101 — Intro CS (09:00-10:00)
func (c Course) TimeRecord() string {
	return fmt.Sprintf("%s — %s (%s-%s)", c.Code, c.Name, c.StartTime, c.EndTime)
}

// Enrollment links a student to a course. The pair (StudentID, CourseID)
// is unique in storage — a student cannot enroll in the same course twice.
type Enrollment struct {
	ID        int64
	StudentID int64
	CourseID  int64
}
