package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

type sample struct {
	Name  string `validate:"notblank,max=5"`
	Count int64  `validate:"gt=0"`
	Kind  string `validate:"oneof=user club"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "abc", Count: 1, Kind: "club"}))

	err := Struct(sample{Name: "   ", Count: 0, Kind: "group"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "INVALID_REQUEST", apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "Name is required")
	assert.Contains(t, err.Error(), "Count must be greater than 0")
	assert.Contains(t, err.Error(), "Kind must be one of: user club")
}
