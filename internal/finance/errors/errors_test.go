package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageError_MatchesDataFetch(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list transactions: %w", NewStorageError("select", cause))

	assert.True(t, IsStorageError(err))
	assert.ErrorIs(t, err, ErrDataFetch)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "data fetch failed")
}

func TestCategoryNotFound_IsValidation(t *testing.T) {
	err := fmt.Errorf("resolve: %w", ErrCategoryNotFound)
	assert.True(t, IsValidationError(err))
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.False(t, IsStorageError(err))
}

func TestValidationErrors(t *testing.T) {
	ve := &ValidationErrors{}
	assert.NoError(t, ve.ErrOrNil())

	ve.Add(ErrInvalidAmount)
	ve.Add(ErrInvalidType)

	err := ve.ErrOrNil()
	assert.True(t, IsValidationErrors(err))
	assert.Equal(t, []string{ErrInvalidAmount.Error(), ErrInvalidType.Error()}, ve.Messages())
	assert.Contains(t, err.Error(), "multiple validation errors")
}
