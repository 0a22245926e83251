// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// The interactive shell should not know or care which database it is
// talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main. Zero shell changes.
//
//   - Writing tests = pass a fake that satisfies the interface, or (as
//     the tests here do) an in-memory SQLite instance.
package storage

import "github.com/muskan-mehrotra/Student-Course-Scheduler/internal/types"

// Storage is the database contract. Every operation is a single
// statement round-trip — there is no caching and no state between calls.
//
// Lookup methods return (id, ok, err): ok is false when nothing matched.
// Absence is an expected outcome for lookups, not an error.
type Storage interface {
	// CreateStudent trims all fields, inserts a student row, and returns
	// the generated id. A duplicate email yields ErrDuplicateKey.
	CreateStudent(email, first, last string) (int64, error)

	// FindStudentIDByEmail matches the trimmed email exactly
	// (case-sensitive, no normalization beyond the trim).
	FindStudentIDByEmail(email string) (int64, bool, error)

	// ListStudentsInCourse returns the students enrolled in the course,
	// ordered by last name then first name.
	ListStudentsInCourse(courseID int64) ([]types.Student, error)

	// CreateCourse trims all fields, upper-cases code and day, inserts a
	// course row, and returns the generated id. A duplicate code yields
	// ErrDuplicateKey; an invalid day fails the schema CHECK constraint.
	CreateCourse(code, name, day, start, end string) (int64, error)

	// FindCourseIDByCode trims and upper-cases the code before lookup,
	// so the match is case-insensitive from the caller's perspective.
	FindCourseIDByCode(code string) (int64, bool, error)

	// ListCoursesForStudent returns the student's courses ordered by
	// day-of-week then start time. Both are plain string orderings: days
	// sort alphabetically (MON < SAT < SUN < THU < TUE < WED), not in
	// calendar order.
	ListCoursesForStudent(studentID int64) ([]types.Course, error)

	// ListCoursesForStudentOnDay filters the same join by day (trimmed,
	// upper-cased) and orders by start time ascending.
	ListCoursesForStudentOnDay(studentID int64, day string) ([]types.Course, error)

	// EnrollStudentInCourse inserts an enrollment row and returns its id.
	// An existing (student, course) pair yields ErrDuplicateKey; an id
	// that does not exist yields ErrReferentialIntegrity.
	EnrollStudentInCourse(studentID, courseID int64) (int64, error)

	// Close releases the underlying database handle.
	Close() error
}
