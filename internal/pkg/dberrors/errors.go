package dberrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes the repositories react to
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation reports a unique violation on any constraint
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation
}

// IsForeignKeyViolation reports a foreign key violation
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeForeignKeyViolation
}

// IsConcurrencyFault reports serialization failures and deadlocks, both of which
// are safe to retry with a fresh transaction.
func IsConcurrencyFault(err error) bool {
	if errors.Is(err, apperrors.ErrConcurrencyFault) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == CodeSerializationFailure || pgErr.Code == CodeDeadlockDetected
}

// Classify wraps concurrency faults with apperrors.ErrConcurrencyFault and leaves other errors unchanged
func Classify(err error) error {
	if err == nil || errors.Is(err, apperrors.ErrConcurrencyFault) {
		return err
	}
	if IsConcurrencyFault(err) {
		return fmt.Errorf("%w: %w", apperrors.ErrConcurrencyFault, err)
	}
	return err
}
