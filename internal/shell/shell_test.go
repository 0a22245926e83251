package shell_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/config"
	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/shell"
	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/storage/sqlite"
)

// runSession feeds a whole scripted session to the shell and returns
// everything it printed. The store persists across calls that share it,
// so a test can seed data with one session and assert with another.
func runSession(t *testing.T, store *sqlite.SQLite, input string) string {
	t.Helper()

	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	sh := shell.New(strings.NewReader(input), &out, store, log)
	require.NoError(t, sh.Run())
	return out.String()
}

func openTestStore(t *testing.T) *sqlite.SQLite {
	t.Helper()

	s, err := sqlite.New(&config.Config{Env: "dev", StoragePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestMenuInvalidOption(t *testing.T) {
	out := runSession(t, openTestStore(t), "9\n0\n")

	require.Contains(t, out, "=== Student Course Scheduler ===")
	require.Contains(t, out, "Invalid option. Try again.")
	require.Contains(t, out, "Exiting. Database saved to disk.")
}

func TestEOFExitsCleanly(t *testing.T) {
	out := runSession(t, openTestStore(t), "")

	require.Contains(t, out, "Choose: ")
	require.Contains(t, out, "Exiting. Database saved to disk.")
}

func TestAddStudentFlow(t *testing.T) {
	out := runSession(t, openTestStore(t),
		"1\nalice@example.com\nAlice\nLin\n0\n")

	require.Contains(t, out, "Student email: ")
	require.Contains(t, out, "First name: ")
	require.Contains(t, out, "Last name: ")
	require.Contains(t, out, "Created student with ID: 1")
}

func TestAddStudentBadEmailAborts(t *testing.T) {
	out := runSession(t, openTestStore(t), "1\nnot-an-email\n0\n")

	// The flow aborts after one message — no retry, no further prompts.
	require.Contains(t, out, "Invalid email format.")
	require.NotContains(t, out, "First name: ")
}

func TestAddStudentDuplicateEmailReported(t *testing.T) {
	store := openTestStore(t)

	runSession(t, store, "1\nalice@example.com\nAlice\nLin\n0\n")
	out := runSession(t, store, "1\nalice@example.com\nAgain\nLin\n0\n")

	require.Contains(t, out, "Could not add student:")
	require.NotContains(t, out, "Created student with ID: 2")
}

func TestAddCourseFlowWithRetries(t *testing.T) {
	out := runSession(t, openTestStore(t),
		"2\ncs101\nIntro CS\nFriday\nFRI\n9:30\n09:30\n10:45\n0\n")

	// Day and time prompts re-prompt until the input is well-formed.
	require.Contains(t, out, "Invalid day. Use MON/TUE/WED/THU/FRI/SAT/SUN.")
	require.Contains(t, out, "Invalid time. Must be HH:MM in 24-hour format (e.g., 09:30, 14:05).")
	require.Contains(t, out, "Created course with ID: 1")
}

func TestAddCourseEndBeforeStartAborts(t *testing.T) {
	store := openTestStore(t)
	out := runSession(t, store,
		"2\nCS101\nIntro CS\nMON\n10:00\n09:00\n0\n")

	require.Contains(t, out, "End time must be after start time.")
	require.NotContains(t, out, "Created course with ID:")

	// Nothing was stored.
	_, ok, err := store.FindCourseIDByCode("CS101")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEnrollFlowAndDuplicateTip(t *testing.T) {
	store := openTestStore(t)

	_, err := store.CreateStudent("alice@example.com", "Alice", "Lin")
	require.NoError(t, err)
	_, err = store.CreateCourse("CS101", "Intro CS", "MON", "09:00", "10:00")
	require.NoError(t, err)

	out := runSession(t, store, "3\nalice@example.com\ncs101\n0\n")
	require.Contains(t, out, "Enrolled student 1 in course 1")

	out = runSession(t, store, "3\nalice@example.com\nCS101\n0\n")
	require.Contains(t, out, "Could not enroll:")
	require.Contains(t, out, "(Tip: the student is already enrolled in that course.)")
}

func TestEnrollUnknownStudentAndCourse(t *testing.T) {
	store := openTestStore(t)

	out := runSession(t, store, "3\nghost@example.com\n0\n")
	require.Contains(t, out, "No student found with that email.")

	_, err := store.CreateStudent("alice@example.com", "Alice", "Lin")
	require.NoError(t, err)

	out = runSession(t, store, "3\nalice@example.com\nNOPE42\n0\n")
	require.Contains(t, out, "No course found with that code.")
}

func TestListStudentsInCourse(t *testing.T) {
	store := openTestStore(t)

	studentID, err := store.CreateStudent("alice@example.com", "Alice", "Lin")
	require.NoError(t, err)
	courseID, err := store.CreateCourse("CS101", "Intro CS", "MON", "09:00", "10:00")
	require.NoError(t, err)

	out := runSession(t, store, "4\ncs101\n0\n")
	require.Contains(t, out, "No students enrolled in CS101")

	_, err = store.EnrollStudentInCourse(studentID, courseID)
	require.NoError(t, err)

	out = runSession(t, store, "4\ncs101\n0\n")
	require.Contains(t, out, "Students in CS101:")
	require.Contains(t, out, " - 1: Alice Lin (alice@example.com)")
}

func TestListCoursesForStudent(t *testing.T) {
	store := openTestStore(t)

	studentID, err := store.CreateStudent("alice@example.com", "Alice", "Lin")
	require.NoError(t, err)

	out := runSession(t, store, "5\nalice@example.com\n0\n")
	require.Contains(t, out, "Student is not enrolled in any courses.")

	courseID, err := store.CreateCourse("CS101", "Intro CS", "MON", "09:00", "10:00")
	require.NoError(t, err)
	_, err = store.EnrollStudentInCourse(studentID, courseID)
	require.NoError(t, err)

	out = runSession(t, store, "5\nalice@example.com\n0\n")
	require.Contains(t, out, "Courses for alice@example.com:")
	require.Contains(t, out, " - CS101 — Intro CS (MON 09:00-10:00)")
}

func TestScheduleOnDay(t *testing.T) {
	store := openTestStore(t)

	studentID, err := store.CreateStudent("alice@example.com", "Alice", "Lin")
	require.NoError(t, err)
	monID, err := store.CreateCourse("CS101", "Intro CS", "MON", "09:00", "10:00")
	require.NoError(t, err)
	tueID, err := store.CreateCourse("MA201", "Linear Algebra", "TUE", "11:00", "12:30")
	require.NoError(t, err)
	_, err = store.EnrollStudentInCourse(studentID, monID)
	require.NoError(t, err)
	_, err = store.EnrollStudentInCourse(studentID, tueID)
	require.NoError(t, err)

	out := runSession(t, store, "6\nalice@example.com\nmon\n0\n")
	require.Contains(t, out, "Schedule for alice@example.com on MON:")
	require.Contains(t, out, " - CS101 — Intro CS (09:00-10:00)")
	require.NotContains(t, out, "MA201")

	out = runSession(t, store, "6\nalice@example.com\nSUN\n0\n")
	require.Contains(t, out, "No classes on SUN for alice@example.com")
}
