// Package validate wires up the go-playground/validator rules this
// application needs on top of the built-in ones.
//
// Two kinds of checks live here:
//
//  1. Single-value helpers (Time, Day, Email) used by the interactive
//     shell to check one field at a time as the user types it.
//
//  2. Struct validation (Struct + the validate:"..." tags in the types
//     package) used as defense-in-depth right before a row is inserted —
//     by the time storage sees a value it has already passed the shell,
//     but the storage path is callable from tests and future code too.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/muskan-mehrotra/Student-Course-Scheduler/internal/types"
)

// Strict 24-hour HH:MM — leading zero required, 00:00 through 23:59.
var timeRe = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)

// Loose email shape: something@something.something, no whitespace.
// Looser than validator's RFC "email" tag on purpose — the original
// system accepted this shape and stored emails verbatim.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dayRule is the oneof tag shared by the Day helper and the Course struct
// tag. Days sort alphabetically as stored (MON < SAT < SUN < THU < ...).
const dayRule = "oneof=MON TUE WED THU FRI SAT SUN"

// v is the shared validator instance. validator.Validate caches struct
// metadata internally and is safe for concurrent use, so one instance
// for the whole process is the intended usage.
var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()

	// RegisterValidation only fails for a blank tag name, so a panic here
	// means a programming error, not a runtime condition.
	if err := val.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return timeRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := val.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	// End must sort strictly after start. Both are fixed-width zero-padded
	// HH:MM strings, so the string comparison is the chronological one.
	// A field-level gtfield tag would not work here: for strings it
	// compares lengths, and HH:MM strings are all the same length.
	val.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(types.Course)
		if c.EndTime <= c.StartTime {
			sl.ReportError(c.EndTime, "EndTime", "EndTime", "after", "StartTime")
		}
	}, types.Course{})

	return val
}

// Time reports whether s is a strict 24-hour HH:MM string.
// "9:30" (no leading zero) and "24:00" both fail; "23:59" passes.
func Time(s string) error {
	if err := v.Var(s, "hhmm"); err != nil {
		return fmt.Errorf("invalid time %q: must be HH:MM in 24-hour format", s)
	}
	return nil
}

// Day trims and upper-cases s, then checks it against the seven valid
// day-of-week codes. On success the normalized form is returned.
func Day(s string) (string, error) {
	day := strings.ToUpper(strings.TrimSpace(s))
	if err := v.Var(day, dayRule); err != nil {
		return "", fmt.Errorf("invalid day %q: use MON/TUE/WED/THU/FRI/SAT/SUN", s)
	}
	return day, nil
}

// Email checks s against the loose email shape used by the add-student
// flow. Lookup flows do not call this — they match whatever was stored.
func Email(s string) error {
	if err := v.Var(s, "emailshape"); err != nil {
		return errors.New("invalid email format")
	}
	return nil
}

// Struct runs all validate:"..." tags on obj.
// Use Message to turn the result into a one-line user-facing string.
func Struct(obj any) error {
	return v.Struct(obj)
}

// Message converts a validator error into a single human-readable line.
// Non-validator errors fall through to their own Error() text.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "emailshape":
			msgs = append(msgs, fmt.Sprintf("field %s must look like an email address", e.Field()))
		case "hhmm":
			msgs = append(msgs, fmt.Sprintf("field %s must be HH:MM in 24-hour format", e.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of MON/TUE/WED/THU/FRI/SAT/SUN", e.Field()))
		case "after":
			msgs = append(msgs, fmt.Sprintf("field %s must be after %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(msgs, ", ")
}
