package imgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	err := InvalidBuffer("raw", "length %d does not match %d", 15, 16)

	assert.ErrorIs(t, err, ErrInvalidBuffer)
	assert.NotErrorIs(t, err, ErrDecode)
	assert.Equal(t, KindInvalidBuffer, KindOf(err))

	wrapped := fmt.Errorf("process: %w", err)
	assert.ErrorIs(t, wrapped, ErrInvalidBuffer)
	assert.Equal(t, KindInvalidBuffer, KindOf(wrapped))
}

func TestErrorMessage(t *testing.T) {
	inner := errors.New("image: unknown format")
	err := Decode(inner)

	assert.Equal(t, "decode error (decode): image: unknown format", err.Error())
	assert.ErrorIs(t, err, inner)

	err = FilterParameter("blur", "sigma must be >= 0, got %g", -1.0)
	assert.Equal(t, "invalid filter parameter (blur): sigma must be >= 0, got -1", err.Error())

	err = Encode("jpeg", "image has zero dimension 0x4", nil)
	assert.Equal(t, "encode error (jpeg): image has zero dimension 0x4", err.Error())
}

func TestKindOfUnclassified(t *testing.T) {
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	require.Equal(t, KindUnknown, KindOf(nil))
}
