package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

func TestIsConcurrencyFault(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: CodeSerializationFailure}, true},
		{"deadlock", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: CodeDeadlockDetected}), true},
		{"unique violation", &pgconn.PgError{Code: CodeUniqueViolation}, false},
		{"plain error", errors.New("boom"), false},
		{"already classified", apperrors.ErrConcurrencyFault, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConcurrencyFault(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	err := Classify(&pgconn.PgError{Code: CodeSerializationFailure})
	assert.ErrorIs(t, err, apperrors.ErrConcurrencyFault)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)

	plain := errors.New("connection refused")
	assert.Same(t, plain, Classify(plain))
	assert.Nil(t, Classify(nil))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "users_username_key"}
	assert.True(t, IsDuplicateConstraintError(err, "users_username_key"))
	assert.False(t, IsDuplicateConstraintError(err, "clubs_name_key"))
	assert.True(t, IsUniqueViolation(err))
}
