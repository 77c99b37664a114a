package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	t.Run("with data prefix", func(t *testing.T) {
		raw, ext, contentType, err := DecodeBase64Image("data:image/png;base64," + encoded)

		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), raw)
		assert.Equal(t, "png", ext)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("bare base64 defaults to jpeg", func(t *testing.T) {
		_, ext, contentType, err := DecodeBase64Image(encoded)

		require.NoError(t, err)
		assert.Equal(t, "jpeg", ext)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, _, _, err := DecodeBase64Image("data:image/svg+xml;base64," + encoded)

		assert.ErrorIs(t, err, ErrInvalidImagePayload)
	})

	t.Run("not base64", func(t *testing.T) {
		_, _, _, err := DecodeBase64Image("data:image/png;base64,???")

		assert.ErrorIs(t, err, ErrInvalidImagePayload)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, _, _, err := DecodeBase64Image("")

		assert.ErrorIs(t, err, ErrInvalidImagePayload)
	})
}
