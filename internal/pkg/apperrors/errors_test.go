package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindErrorsUnwrapToTheirKind(t *testing.T) {
	tests := []struct {
		err  error
		kind error
	}{
		{ErrEmptyComment, ErrValidationFailed},
		{ErrEmptyReason, ErrValidationFailed},
		{ErrInvalidReactionType, ErrValidationFailed},
		{ErrInvalidAction, ErrValidationFailed},
		{ErrSelfReportForbidden, ErrPermissionDenied},
		{ErrUnauthorizedClubAccess, ErrPermissionDenied},
		{ErrSelfMessageForbidden, ErrPermissionDenied},
		{ErrPublicationNotFound, ErrResourceNotFound},
		{ErrAlreadyMember, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("service: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "EMPTY_REASON", CodeOf(fmt.Errorf("x: %w", ErrEmptyReason)))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestIs(t *testing.T) {
	assert.True(t, Is(ErrClubNotFound, ErrConflict, ErrResourceNotFound))
	assert.False(t, Is(ErrClubNotFound, ErrConflict))
}
