package storage

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors for the failure classes callers branch on.
// Check with errors.Is — concrete storage errors wrap these.
var (
	// ErrDuplicateKey: a uniqueness constraint was violated — duplicate
	// student email, duplicate course code, or an enrollment pair that
	// already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrReferentialIntegrity: a foreign key pointed at a row that does
	// not exist. Callers resolve ids before enrolling, so hitting this
	// means the row went away in between.
	ErrReferentialIntegrity = errors.New("referential integrity violation")

	// ErrNotCreated: an insert reported success but produced no row id.
	// Should not occur in normal operation.
	ErrNotCreated = errors.New("row not created")
)

// Classify maps a go-sqlite3 driver error onto the sentinel taxonomy,
// keeping the driver detail in the wrapped chain. Errors that are not
// constraint violations pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", ErrReferentialIntegrity, err)
	}

	return err
}
