package ocr

import (
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mes-labs/receipt-extractor/internal/common"
)

var tinyPNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 0}

func TestDecodeBase64Image(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString(tinyPNG)

	path, cleanup, err := DecodeBase64Image(b64)
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, strings.HasSuffix(path, "receipt.png"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, tinyPNG, data)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDecodeBase64ImageDataURL(t *testing.T) {
	b64 := "data:image/png;base64," + base64.StdEncoding.EncodeToString(tinyPNG)

	path, cleanup, err := DecodeBase64Image(b64)
	require.NoError(t, err)
	defer cleanup()
	assert.True(t, strings.HasSuffix(path, ".png"))
}

func TestDecodeBase64ImageRejectsGarbage(t *testing.T) {
	for name, payload := range map[string]string{
		"not base64":   "%%%not-base64%%%",
		"not an image": base64.StdEncoding.EncodeToString([]byte("hello world")),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeBase64Image(payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrInvalidInput))

			var appErr *common.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "DECODE_ERROR", appErr.Code)
		})
	}
}
