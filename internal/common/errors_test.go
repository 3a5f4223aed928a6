package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError("DECODE_ERROR", "bad payload", ErrInvalidInput)

	assert.Equal(t, "DECODE_ERROR: bad payload: invalid input", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))

	bare := NewAppError("CONFIG_ERROR", "missing addr", nil)
	assert.Equal(t, "CONFIG_ERROR: missing addr", bare.Error())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "open docstore"))

	wrapped := WrapError(ErrUnavailable, "open docstore")
	assert.EqualError(t, wrapped, "open docstore: temporarily unavailable")
	assert.True(t, errors.Is(wrapped, ErrUnavailable))
}
