package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Common database error types that can be used by consumers of this package.
// These provide a standardized set of errors that abstract away the
// underlying database-specific error details.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidColumn is returned when a caller-supplied identifier fails the
	// allow-list check. This is a programming error, not recoverable user input.
	ErrInvalidColumn = errors.New("invalid column name")

	// ErrInvalidOperator is returned for operators outside the fixed allow-list.
	ErrInvalidOperator = errors.New("invalid filter operator")

	// ErrInvalidValue is returned for filter values that cannot bind as a
	// single SQL parameter, such as maps or structs. This is a programming
	// error, not recoverable user input.
	ErrInvalidValue = errors.New("invalid filter value")

	// ErrInvalidDirection is returned for sort directions other than ASC/DESC.
	ErrInvalidDirection = errors.New("invalid sort direction")
)

// PostgreSQL error codes this package translates.
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// TranslateError converts pgx/driver-specific errors into standardized
// application errors, allowing callers to handle failures in a
// database-agnostic way. Errors that don't match any known type are
// returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUniqueViolation:
			return ErrDuplicateKey
		case pgCodeForeignKeyViolation:
			return ErrForeignKey
		}
	}

	return err
}
