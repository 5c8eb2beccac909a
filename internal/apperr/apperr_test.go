package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKind(t *testing.T) {
	err := NewNotFound("order %s not found", "abc")

	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("settle payment: %w", NewAlreadySettled("payment already settled"))

	assert.True(t, IsKind(err, KindAlreadySettled))
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewValidation("grams must be positive"))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "grams must be positive", appErr.Msg)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "order not found", NewNotFound("order not found").Error())

	cause := errors.New("connection refused")
	err := NewGateway("payment gateway unreachable", cause)
	assert.Equal(t, "payment gateway unreachable: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}
