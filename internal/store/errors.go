package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound reports that the targeted record, or a record it references, does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation.
	ErrConflict = errors.New("conflict")

	ErrDuplicateEmail = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrAdminExists    = fmt.Errorf("%w: an admin already exists", ErrConflict)
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY ||
			(liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "FOREIGN KEY"))
	}
	return false
}

// uniqueViolation reports whether err is a uniqueness violation and, if so,
// the constraint (Postgres) or column list (SQLite) that was violated.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		msg := liteErr.Error()
		if liteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT || !strings.Contains(msg, "UNIQUE") {
			return "", false
		}
		if i := strings.Index(msg, "failed: "); i >= 0 {
			return msg[i+len("failed: "):], true
		}
		return msg, true
	}
	return "", false
}

// insertError classifies a failed INSERT or UPDATE: a dangling reference
// becomes ErrNotFound so callers never need a read-before-write existence check.
func insertError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// notFoundOr maps sql.ErrNoRows to ErrNotFound and wraps anything else.
func notFoundOr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// userWriteError classifies a failed users INSERT or UPDATE by the unique
// constraint it violated.
func userWriteError(op string, err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch {
	case strings.Contains(constraint, "users_single_admin"), strings.Contains(constraint, "users.position"):
		return fmt.Errorf("%s: %w", op, ErrAdminExists)
	case strings.Contains(constraint, "users_email_unique"), strings.Contains(constraint, "users.email"):
		return fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	}
	return fmt.Errorf("%s: %w: %s", op, ErrConflict, constraint)
}
