package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtensionForMIME(t *testing.T) {
	assert.Equal(t, "png", ExtensionForMIME("image/png"))
	assert.Equal(t, "jpg", ExtensionForMIME("image/jpeg"))
	assert.Equal(t, "webp", ExtensionForMIME("IMAGE/WEBP"))
	assert.Equal(t, "png", ExtensionForMIME("image/png; charset=binary"))
	assert.Equal(t, "png", ExtensionForMIME(""))
	assert.Equal(t, "png", ExtensionForMIME("application/octet-stream"))
}

func TestArtifactFilename(t *testing.T) {
	at := time.Date(2026, 10, 17, 9, 5, 3, 0, time.UTC)

	assert.Equal(t, "generated_20261017_090503.png", ArtifactFilename("generated", at, 0, "png"))
	assert.Equal(t, "mbe_20261017_090503_002.jpg", ArtifactFilename("mbe", at, 2, "jpg"))
	assert.Equal(t, "generated_20261017_090503.png", ArtifactFilename("", at, 0, "png"))
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, ValidatePrefix("beijing_story"))
	assert.NoError(t, ValidatePrefix(""))
	assert.Error(t, ValidatePrefix("../escape"))
	assert.Error(t, ValidatePrefix(`a\b`))
	assert.Error(t, ValidatePrefix(".."))
}
