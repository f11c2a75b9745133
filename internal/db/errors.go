package db

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound marks a confirmed-absent row. Callers use it to tell
// "does not exist" apart from a failed lookup; only the former may be
// treated as a normal state.
var ErrNotFound = errors.New("not found")

// ErrDuplicate marks a unique-constraint violation, e.g. registering
// an email twice or adding a second membership for the same user.
var ErrDuplicate = errors.New("already exists")

// mapError converts driver-level errors into the store's sentinel
// errors where a category is recognizable, passing everything else
// through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDuplicate
	}
	return err
}
