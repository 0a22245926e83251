package sqlite

import (
	"fmt"
	"testing"

	"github.com/qawatake/fixify"
	"github.com/stretchr/testify/require"

	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/types"
)

// Fixture connectors: enrollments pick up their foreign keys from their
// parent student and course after those parents have been inserted, so a
// test only declares the shape of the graph.

func studentFixture(email, first, last string) *fixify.Model[types.Student] {
	return fixify.NewModel(&types.Student{
		Email:     email,
		FirstName: first,
		LastName:  last,
	})
}

func courseFixture(code, name, day, start, end string) *fixify.Model[types.Course] {
	return fixify.NewModel(&types.Course{
		Code:      code,
		Name:      name,
		Day:       day,
		StartTime: start,
		EndTime:   end,
	})
}

func enrollmentFixture() *fixify.Model[types.Enrollment] {
	return fixify.NewModel(new(types.Enrollment),
		fixify.ConnectorFunc(func(_ testing.TB, enrollment *types.Enrollment, student *types.Student) {
			enrollment.StudentID = student.ID
		}),
		fixify.ConnectorFunc(func(_ testing.TB, enrollment *types.Enrollment, course *types.Course) {
			enrollment.CourseID = course.ID
		}),
	)
}

// insertFixture walks the graph in topological order (students and
// courses before the enrollments that reference them) and persists each
// model through the storage layer.
func insertFixture(t *testing.T, s *SQLite, f *fixify.Fixture) {
	t.Helper()

	f.Apply(func(model any) error {
		switch m := model.(type) {
		case *types.Student:
			id, err := s.CreateStudent(m.Email, m.FirstName, m.LastName)
			if err != nil {
				return err
			}
			m.ID = id
		case *types.Course:
			id, err := s.CreateCourse(m.Code, m.Name, m.Day, m.StartTime, m.EndTime)
			if err != nil {
				return err
			}
			m.ID = id
		case *types.Enrollment:
			id, err := s.EnrollStudentInCourse(m.StudentID, m.CourseID)
			if err != nil {
				return err
			}
			m.ID = id
		default:
			return fmt.Errorf("unexpected fixture model %T", model)
		}
		return nil
	})
}

func TestFixtureGraphEndToEnd(t *testing.T) {
	s := openTestStore(t)

	alice := studentFixture("alice@example.com", "Alice", "Lin")
	bob := studentFixture("bob@example.com", "Bob", "Adams")

	intro := courseFixture("CS101", "Intro CS", "MON", "09:00", "10:00")
	algebra := courseFixture("MA201", "Linear Algebra", "WED", "11:00", "12:30")

	// Alice takes both courses, Bob only the first.
	e1 := enrollmentFixture()
	e2 := enrollmentFixture()
	e3 := enrollmentFixture()

	f := fixify.New(t,
		alice.With(e1, e2),
		bob.With(e3),
		intro.With(e1, e3),
		algebra.With(e2),
	)
	insertFixture(t, s, f)

	courses, err := s.ListCoursesForStudent(alice.Value().ID)
	require.NoError(t, err)

	got := make([]string, 0, len(courses))
	for _, c := range courses {
		got = append(got, c.Record())
	}
	require.Equal(t, []string{
		"CS101 — Intro CS (MON 09:00-10:00)",
		"MA201 — Linear Algebra (WED 11:00-12:30)",
	}, got)

	students, err := s.ListStudentsInCourse(intro.Value().ID)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "Adams", students[0].LastName)
	require.Equal(t, "Lin", students[1].LastName)

	schedule, err := s.ListCoursesForStudentOnDay(bob.Value().ID, "MON")
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	require.Equal(t, "CS101 — Intro CS (09:00-10:00)", schedule[0].TimeRecord())
}
