package repo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the requested id or key.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is matched (errors.Is) by every *DuplicateError.
	ErrDuplicate = errors.New("duplicate")
	// ErrOutOfRange is returned when a numeric value does not fit its column.
	ErrOutOfRange = errors.New("value out of range")
)

// DuplicateError reports a unique constraint violation on Field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s", e.Field)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Postgres error codes this package translates.
const (
	pqUniqueViolation   = "23505"
	pqInvalidTextRepr   = "22P02"
	pqNumericOutOfRange = "22003"
	constraintUserEmail = "users_email_key"
	constraintUserName  = "users_username_key"
)

// translate maps driver errors to the package sentinels. ok is false for
// errors it does not recognize.
func translate(err error) (translated error, ok bool) {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			switch pqErr.Constraint {
			case constraintUserEmail:
				return &DuplicateError{Field: "email"}, true
			case constraintUserName:
				return &DuplicateError{Field: "username"}, true
			}
			return &DuplicateError{Field: pqErr.Constraint}, true
		case pqInvalidTextRepr:
			// a malformed uuid cannot match any row
			return ErrNotFound, true
		case pqNumericOutOfRange:
			return ErrOutOfRange, true
		}
	}
	return err, false
}

type scanner interface {
	Scan(dest ...any) error
}

// wrap translates err or, for unrecognized errors, annotates it with op.
func wrap(err error, op string) error {
	if t, ok := translate(err); ok {
		return t
	}
	return fmt.Errorf("%s: %w", op, err)
}
