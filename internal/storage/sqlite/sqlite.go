// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// Everything lives in a single file on disk. There is no network, no
// separate server process, and no installation beyond the driver — the
// right shape for a single-user console program.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/config"
	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/storage"
	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/types"
	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/validate"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// schema is issued on every startup. CREATE TABLE IF NOT EXISTS is
// idempotent — existing data is never touched.
//
// Constraints do the heavy lifting:
//   - students.email and courses.course_code are UNIQUE
//   - day_of_week is CHECKed against the seven valid codes
//   - enrollments is UNIQUE on (student_id, course_id) and both foreign
//     keys cascade on delete
const schema = `
CREATE TABLE IF NOT EXISTS students (
	student_id INTEGER PRIMARY KEY AUTOINCREMENT,
	email      TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
	course_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	course_code TEXT NOT NULL UNIQUE,
	course_name TEXT NOT NULL,
	day_of_week TEXT NOT NULL CHECK(day_of_week IN ('MON','TUE','WED','THU','FRI','SAT','SUN')),
	start_time  TEXT NOT NULL, -- HH:MM
	end_time    TEXT NOT NULL  -- HH:MM
);

CREATE TABLE IF NOT EXISTS enrollments (
	enrollment_id INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id    INTEGER NOT NULL,
	course_id     INTEGER NOT NULL,
	UNIQUE(student_id, course_id),
	FOREIGN KEY(student_id) REFERENCES students(student_id) ON DELETE CASCADE,
	FOREIGN KEY(course_id)  REFERENCES courses(course_id)  ON DELETE CASCADE
);
`

var _ storage.Storage = (*SQLite)(nil)

// SQLite is the concrete implementation of storage.Storage.
// The Db field is exported the same way the handle always has been here:
// tests (and manual maintenance) reach the raw database through it.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, ensures the schema
// exists, and returns a ready-to-use *SQLite.
//
// Two DSN/pool details matter:
//
//   - _foreign_keys=on: SQLite ships with foreign-key enforcement OFF.
//     The DSN parameter turns it on for every connection the pool opens,
//     which the cascade deletes and enrollment FKs depend on.
//
//   - SetMaxOpenConns(1): the application is strictly single-user and
//     serial — one statement in flight at a time. Capping the pool keeps
//     that model honest, and it also makes ":memory:" databases behave
//     (each new connection to ":memory:" would otherwise see a fresh,
//     empty database).
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create schema: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

// CreateStudent inserts a new row into the students table and returns the
// generated student_id. All fields are trimmed first; the validator tags
// on types.Student run as a backstop before the insert.
func (s *SQLite) CreateStudent(email, first, last string) (int64, error) {
	student := types.Student{
		Email:     strings.TrimSpace(email),
		FirstName: strings.TrimSpace(first),
		LastName:  strings.TrimSpace(last),
	}
	if err := validate.Struct(student); err != nil {
		return 0, fmt.Errorf("CreateStudent: %s", validate.Message(err))
	}

	stmt, err := s.Db.Prepare(
		"INSERT INTO students (email, first_name, last_name) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(student.Email, student.FirstName, student.LastName)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: %w", storage.Classify(err))
	}

	return lastID(result, "CreateStudent")
}

// FindStudentIDByEmail looks up a student by exact (trimmed) email.
// The second return value is false when no student matched.
func (s *SQLite) FindStudentIDByEmail(email string) (int64, bool, error) {
	stmt, err := s.Db.Prepare(
		"SELECT student_id FROM students WHERE email = ? LIMIT 1",
	)
	if err != nil {
		return 0, false, fmt.Errorf("FindStudentIDByEmail: prepare: %w", err)
	}
	defer stmt.Close()

	var id int64
	err = stmt.QueryRow(strings.TrimSpace(email)).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("FindStudentIDByEmail: scan: %w", err)
	}

	return id, true, nil
}

// ListStudentsInCourse joins enrollments to students for one course.
// Results are ordered by last name, then first name.
func (s *SQLite) ListStudentsInCourse(courseID int64) ([]types.Student, error) {
	stmt, err := s.Db.Prepare(`
		SELECT s.student_id, s.email, s.first_name, s.last_name
		FROM students s
		JOIN enrollments e ON e.student_id = s.student_id
		WHERE e.course_id = ?
		ORDER BY s.last_name, s.first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("ListStudentsInCourse: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(courseID)
	if err != nil {
		return nil, fmt.Errorf("ListStudentsInCourse: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var st types.Student
		if err := rows.Scan(&st.ID, &st.Email, &st.FirstName, &st.LastName); err != nil {
			return nil, fmt.Errorf("ListStudentsInCourse: scan row: %w", err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudentsInCourse: rows iteration: %w", err)
	}

	return students, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Courses
// ─────────────────────────────────────────────────────────────────────────────

// CreateCourse inserts a new row into the courses table and returns the
// generated course_id. The code and day are stored upper-cased; start and
// end times are stored as given (validated upstream, plus the validator
// backstop here).
func (s *SQLite) CreateCourse(code, name, day, start, end string) (int64, error) {
	course := types.Course{
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Name:      strings.TrimSpace(name),
		Day:       strings.ToUpper(strings.TrimSpace(day)),
		StartTime: strings.TrimSpace(start),
		EndTime:   strings.TrimSpace(end),
	}
	if err := validate.Struct(course); err != nil {
		return 0, fmt.Errorf("CreateCourse: %s", validate.Message(err))
	}

	stmt, err := s.Db.Prepare(`
		INSERT INTO courses (course_code, course_name, day_of_week, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("CreateCourse: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(course.Code, course.Name, course.Day, course.StartTime, course.EndTime)
	if err != nil {
		return 0, fmt.Errorf("CreateCourse: %w", storage.Classify(err))
	}

	return lastID(result, "CreateCourse")
}

// FindCourseIDByCode looks up a course by code. The code is trimmed and
// upper-cased before the query, so lookups are case-insensitive from the
// caller's perspective.
func (s *SQLite) FindCourseIDByCode(code string) (int64, bool, error) {
	stmt, err := s.Db.Prepare(
		"SELECT course_id FROM courses WHERE course_code = ? LIMIT 1",
	)
	if err != nil {
		return 0, false, fmt.Errorf("FindCourseIDByCode: prepare: %w", err)
	}
	defer stmt.Close()

	var id int64
	err = stmt.QueryRow(strings.ToUpper(strings.TrimSpace(code))).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("FindCourseIDByCode: scan: %w", err)
	}

	return id, true, nil
}

// ListCoursesForStudent joins enrollments to courses for one student.
//
// ORDER BY day_of_week, start_time compares both columns as plain text,
// so days come out alphabetically (MON < SAT < SUN < THU < TUE < WED),
// not in calendar order. That ordering is part of the contract here.
func (s *SQLite) ListCoursesForStudent(studentID int64) ([]types.Course, error) {
	stmt, err := s.Db.Prepare(`
		SELECT c.course_id, c.course_code, c.course_name, c.day_of_week, c.start_time, c.end_time
		FROM courses c
		JOIN enrollments e ON e.course_id = c.course_id
		WHERE e.student_id = ?
		ORDER BY c.day_of_week, c.start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("ListCoursesForStudent: prepare: %w", err)
	}
	defer stmt.Close()

	return s.scanCourses(stmt, "ListCoursesForStudent", studentID)
}

// ListCoursesForStudentOnDay is the same join filtered to one day,
// ordered by start time. Fixed-width HH:MM strings make the string
// ordering chronological.
func (s *SQLite) ListCoursesForStudentOnDay(studentID int64, day string) ([]types.Course, error) {
	stmt, err := s.Db.Prepare(`
		SELECT c.course_id, c.course_code, c.course_name, c.day_of_week, c.start_time, c.end_time
		FROM courses c
		JOIN enrollments e ON e.course_id = c.course_id
		WHERE e.student_id = ? AND c.day_of_week = ?
		ORDER BY c.start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("ListCoursesForStudentOnDay: prepare: %w", err)
	}
	defer stmt.Close()

	return s.scanCourses(stmt, "ListCoursesForStudentOnDay",
		studentID, strings.ToUpper(strings.TrimSpace(day)))
}

// scanCourses runs a prepared course query and collects the rows.
// Both course listings select the same six columns in the same order.
func (s *SQLite) scanCourses(stmt *sql.Stmt, op string, args ...any) ([]types.Course, error) {
	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	courses := make([]types.Course, 0)
	for rows.Next() {
		var c types.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Day, &c.StartTime, &c.EndTime); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return courses, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Enrollments
// ─────────────────────────────────────────────────────────────────────────────

// EnrollStudentInCourse inserts one enrollment row. The UNIQUE and
// FOREIGN KEY constraints turn a repeat enrollment into ErrDuplicateKey
// and a dangling id into ErrReferentialIntegrity.
func (s *SQLite) EnrollStudentInCourse(studentID, courseID int64) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO enrollments (student_id, course_id) VALUES (?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("EnrollStudentInCourse: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(studentID, courseID)
	if err != nil {
		return 0, fmt.Errorf("EnrollStudentInCourse: %w", storage.Classify(err))
	}

	return lastID(result, "EnrollStudentInCourse")
}

// lastID extracts the generated row id from an insert, mapping the
// should-never-happen empty case to storage.ErrNotCreated.
func lastID(result sql.Result, op string) (int64, error) {
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, storage.ErrNotCreated, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrNotCreated)
	}
	return id, nil
}
