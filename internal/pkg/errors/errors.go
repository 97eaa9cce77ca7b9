package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a user, profile or achievement is missing.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for malformed or inconsistent input,
	// rejected before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned for credential or token failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned when a uniqueness constraint is violated,
	// e.g. a taken username.
	ErrConflict = errors.New("conflict")
	// ErrInsufficientFunds is returned when a spend exceeds the balance.
	// The balance is left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// IsUniqueViolation reports whether err is a uniqueness-constraint failure
// from the backing store. Postgres surfaces these as SQLSTATE 23505; the
// string checks cover SQLite (used by the test harness) and GORM's own
// translation layer.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.TrimSpace(pgErr.Code) == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "already exists")
}

// IsNotFound reports whether err is a missing-record failure, either the
// service-level sentinel or GORM's.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
