package validator

import (
	"testing"

	domainerrors "polystore/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

func TestRequestValidator_Valid(t *testing.T) {
	assert.NoError(t, New().Validate(&signup{Name: "ann", Email: "ann@x.com"}))
}

func TestRequestValidator_ListsEveryFailure(t *testing.T) {
	err := New().Validate(&signup{Email: "nope"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Name: required, Email: email", appErr.Details())
}

func TestRequestValidator_NonStruct(t *testing.T) {
	err := New().Validate("plain string")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrValidationFailed)
}
