package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	payload := base64.StdEncoding.EncodeToString(raw)

	t.Run("data URI with content type", func(t *testing.T) {
		data, contentType, err := DecodeBase64Image("data:image/jpeg;base64," + payload)
		require.NoError(t, err)
		assert.Equal(t, raw, data)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("bare payload defaults to png", func(t *testing.T) {
		data, contentType, err := DecodeBase64Image(payload)
		require.NoError(t, err)
		assert.Equal(t, raw, data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("malformed data URI", func(t *testing.T) {
		_, _, err := DecodeBase64Image("data:image/png;base64")
		assert.Error(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := DecodeBase64Image("data:image/png;base64,%%%")
		assert.Error(t, err)
	})
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".gif", extensionFor("image/gif"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".png", extensionFor("application/octet-stream"))
}
