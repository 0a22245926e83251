// Package shell implements the interactive menu loop — the entire user
// surface of the application.
//
// DISPATCH MODEL:
// ───────────────
// One blocking loop: print the menu, read a single-character choice,
// run the matching flow, repeat. Each flow prompts for its fields one
// line at a time, calls the storage layer, and prints either results or
// a one-line error message. Nothing here is concurrent and nothing is
// cached — every answer comes straight from storage.
//
// Two validation behaviours coexist on purpose:
//
//   - Structural fields (time, day) re-prompt in a loop until the input
//     is well-formed. The flow cannot proceed with a malformed value.
//
//   - Business fields (email in add-student, end-after-start) are checked
//     once; on failure the whole flow aborts with a message and the user
//     is back at the menu.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/storage"
	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/validate"
)

// Shell drives the menu loop. All dependencies are explicit: the reader
// and writer are injected so tests can script a whole session, and the
// store is the storage.Storage interface rather than a concrete backend.
type Shell struct {
	in    *bufio.Reader
	out   io.Writer
	store storage.Storage
	log   *slog.Logger
}

// New returns a Shell reading from in and printing to out.
func New(in io.Reader, out io.Writer, store storage.Storage, log *slog.Logger) *Shell {
	return &Shell{
		in:    bufio.NewReader(in),
		out:   out,
		store: store,
		log:   log,
	}
}

// Run loops until the user chooses exit or input reaches EOF.
// The returned error is only ever a terminal I/O failure — domain and
// storage errors are reported to the user and the loop continues.
func (sh *Shell) Run() error {
	for {
		sh.printMenu()

		choice, err := sh.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sh.out)
				fmt.Fprintln(sh.out, "Exiting. Database saved to disk.")
				return nil
			}
			return fmt.Errorf("shell: read choice: %w", err)
		}

		switch choice {
		case "1":
			err = sh.addStudent()
		case "2":
			err = sh.addCourse()
		case "3":
			err = sh.enroll()
		case "4":
			err = sh.listStudentsInCourse()
		case "5":
			err = sh.listCoursesForStudent()
		case "6":
			err = sh.listScheduleOnDay()
		case "0":
			fmt.Fprintln(sh.out, "Exiting. Database saved to disk.")
			return nil
		default:
			fmt.Fprintln(sh.out, "Invalid option. Try again.")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				// Input ran out mid-flow; there is nothing more to read.
				fmt.Fprintln(sh.out)
				fmt.Fprintln(sh.out, "Exiting. Database saved to disk.")
				return nil
			}
			return err
		}

		fmt.Fprintln(sh.out)
	}
}

func (sh *Shell) printMenu() {
	fmt.Fprintln(sh.out, "=== Student Course Scheduler ===")
	fmt.Fprintln(sh.out, "1) Add new student")
	fmt.Fprintln(sh.out, "2) Add new course")
	fmt.Fprintln(sh.out, "3) Enroll student in course")
	fmt.Fprintln(sh.out, "4) List students in a course")
	fmt.Fprintln(sh.out, "5) List courses for a student")
	fmt.Fprintln(sh.out, "6) List a student's schedule for a day")
	fmt.Fprintln(sh.out, "0) Exit")
	fmt.Fprint(sh.out, "Choose: ")
}

// ─────────────────────────────────────────────────────────────────────────────
// Flows
// ─────────────────────────────────────────────────────────────────────────────

// addStudent is option 1. The email is checked once; on mismatch the
// flow aborts rather than re-prompting.
func (sh *Shell) addStudent() error {
	email, err := sh.ask("Student email: ")
	if err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		fmt.Fprintln(sh.out, "Invalid email format.")
		return nil
	}

	first, err := sh.ask("First name: ")
	if err != nil {
		return err
	}
	last, err := sh.ask("Last name: ")
	if err != nil {
		return err
	}

	id, err := sh.store.CreateStudent(email, first, last)
	if err != nil {
		sh.log.Error("add student failed", slog.String("error", err.Error()))
		fmt.Fprintf(sh.out, "Could not add student: %v\n", err)
		return nil
	}

	sh.log.Debug("student created", slog.Int64("id", id))
	fmt.Fprintf(sh.out, "Created student with ID: %d\n", id)
	return nil
}

// addCourse is option 2. Day and the two times re-prompt until valid;
// the end-after-start check aborts the flow on failure.
func (sh *Shell) addCourse() error {
	code, err := sh.ask("Course code (e.g., CS101): ")
	if err != nil {
		return err
	}
	code = strings.ToUpper(code)

	name, err := sh.ask("Course name: ")
	if err != nil {
		return err
	}
	day, err := sh.askDay()
	if err != nil {
		return err
	}
	start, err := sh.askTime("Start time (HH:MM 24h): ")
	if err != nil {
		return err
	}
	end, err := sh.askTime("End time (HH:MM 24h): ")
	if err != nil {
		return err
	}

	// Lexicographic comparison is chronological for zero-padded HH:MM.
	if end <= start {
		fmt.Fprintln(sh.out, "End time must be after start time.")
		return nil
	}

	id, err := sh.store.CreateCourse(code, name, day, start, end)
	if err != nil {
		sh.log.Error("add course failed", slog.String("error", err.Error()))
		fmt.Fprintf(sh.out, "Could not add course: %v\n", err)
		return nil
	}

	sh.log.Debug("course created", slog.Int64("id", id), slog.String("code", code))
	fmt.Fprintf(sh.out, "Created course with ID: %d\n", id)
	return nil
}

// enroll is option 3. Both keys are resolved to ids before the insert,
// so the storage-level duplicate is the only expected failure.
func (sh *Shell) enroll() error {
	studentID, _, ok, err := sh.lookupStudent()
	if err != nil || !ok {
		return err
	}

	code, err := sh.ask("Course code: ")
	if err != nil {
		return err
	}
	courseID, ok, err := sh.store.FindCourseIDByCode(code)
	if err != nil {
		fmt.Fprintf(sh.out, "Query failed: %v\n", err)
		return nil
	}
	if !ok {
		fmt.Fprintln(sh.out, "No course found with that code.")
		return nil
	}

	if _, err := sh.store.EnrollStudentInCourse(studentID, courseID); err != nil {
		sh.log.Error("enroll failed", slog.String("error", err.Error()))
		fmt.Fprintf(sh.out, "Could not enroll: %v\n", err)
		if errors.Is(err, storage.ErrDuplicateKey) {
			fmt.Fprintln(sh.out, "(Tip: the student is already enrolled in that course.)")
		}
		return nil
	}

	fmt.Fprintf(sh.out, "Enrolled student %d in course %d\n", studentID, courseID)
	return nil
}

// listStudentsInCourse is option 4.
func (sh *Shell) listStudentsInCourse() error {
	code, err := sh.ask("Course code: ")
	if err != nil {
		return err
	}
	courseID, ok, err := sh.store.FindCourseIDByCode(code)
	if err != nil {
		fmt.Fprintf(sh.out, "Query failed: %v\n", err)
		return nil
	}
	if !ok {
		fmt.Fprintln(sh.out, "No course found with that code.")
		return nil
	}

	students, err := sh.store.ListStudentsInCourse(courseID)
	if err != nil {
		fmt.Fprintf(sh.out, "Query failed: %v\n", err)
		return nil
	}

	code = strings.ToUpper(code)
	if len(students) == 0 {
		fmt.Fprintf(sh.out, "No students enrolled in %s\n", code)
		return nil
	}

	fmt.Fprintf(sh.out, "Students in %s:\n", code)
	for _, st := range students {
		fmt.Fprintf(sh.out, " - %s\n", st.Record())
	}
	return nil
}

// listCoursesForStudent is option 5.
func (sh *Shell) listCoursesForStudent() error {
	studentID, email, ok, err := sh.lookupStudent()
	if err != nil || !ok {
		return err
	}

	courses, err := sh.store.ListCoursesForStudent(studentID)
	if err != nil {
		fmt.Fprintf(sh.out, "Query failed: %v\n", err)
		return nil
	}
	if len(courses) == 0 {
		fmt.Fprintln(sh.out, "Student is not enrolled in any courses.")
		return nil
	}

	fmt.Fprintf(sh.out, "Courses for %s:\n", email)
	for _, c := range courses {
		fmt.Fprintf(sh.out, " - %s\n", c.Record())
	}
	return nil
}

// listScheduleOnDay is option 6.
func (sh *Shell) listScheduleOnDay() error {
	studentID, email, ok, err := sh.lookupStudent()
	if err != nil || !ok {
		return err
	}

	day, err := sh.askDay()
	if err != nil {
		return err
	}

	courses, err := sh.store.ListCoursesForStudentOnDay(studentID, day)
	if err != nil {
		fmt.Fprintf(sh.out, "Query failed: %v\n", err)
		return nil
	}
	if len(courses) == 0 {
		fmt.Fprintf(sh.out, "No classes on %s for %s\n", day, email)
		return nil
	}

	fmt.Fprintf(sh.out, "Schedule for %s on %s:\n", email, day)
	for _, c := range courses {
		fmt.Fprintf(sh.out, " - %s\n", c.TimeRecord())
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Input helpers
// ─────────────────────────────────────────────────────────────────────────────

// lookupStudent prompts for a student email and resolves it to an id.
// Prints the not-found / failure message itself; ok is false whenever the
// caller's flow should stop. The trimmed email is returned for use in
// result headers.
func (sh *Shell) lookupStudent() (id int64, email string, ok bool, err error) {
	email, err = sh.ask("Student email: ")
	if err != nil {
		return 0, "", false, err
	}
	id, ok, err = sh.store.FindStudentIDByEmail(email)
	if err != nil {
		fmt.Fprintf(sh.out, "Query failed: %v\n", err)
		return 0, "", false, nil
	}
	if !ok {
		fmt.Fprintln(sh.out, "No student found with that email.")
		return 0, "", false, nil
	}
	return id, email, true, nil
}

// ask prints the prompt and reads one trimmed line.
func (sh *Shell) ask(prompt string) (string, error) {
	fmt.Fprint(sh.out, prompt)
	return sh.readLine()
}

// readLine reads one line and trims surrounding whitespace. A final line
// without a trailing newline is still returned; the EOF surfaces on the
// next read.
func (sh *Shell) readLine() (string, error) {
	line, err := sh.in.ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askTime re-prompts until the input is a strict 24-hour HH:MM string.
func (sh *Shell) askTime(prompt string) (string, error) {
	for {
		t, err := sh.ask(prompt)
		if err != nil {
			return "", err
		}
		if validate.Time(t) != nil {
			fmt.Fprintln(sh.out, "Invalid time. Must be HH:MM in 24-hour format (e.g., 09:30, 14:05).")
			continue
		}
		return t, nil
	}
}

// askDay re-prompts until the input is one of the seven day codes.
// The returned value is trimmed and upper-cased.
func (sh *Shell) askDay() (string, error) {
	for {
		raw, err := sh.ask("Day of week (MON/TUE/WED/THU/FRI/SAT/SUN): ")
		if err != nil {
			return "", err
		}
		day, verr := validate.Day(raw)
		if verr != nil {
			fmt.Fprintln(sh.out, "Invalid day. Use MON/TUE/WED/THU/FRI/SAT/SUN.")
			continue
		}
		return day, nil
	}
}
