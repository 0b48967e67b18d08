package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := objectName("/products/", "image/png")
	assert.True(t, strings.HasPrefix(name, "products/"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	assert.True(t, strings.HasPrefix(objectName("", "image/webp"), "uploads/"))
	assert.True(t, strings.HasSuffix(objectName("x", "text/plain"), ".bin"))
	assert.NotEqual(t, objectName("x", "image/gif"), objectName("x", "image/gif"))
}

func TestObjectFromURL(t *testing.T) {
	name, err := objectFromURL("https://storage.googleapis.com/eco/products/a.png", gcsBaseURL, "eco")
	require.NoError(t, err)
	assert.Equal(t, "products/a.png", name)

	_, err = objectFromURL("https://storage.googleapis.com/other/products/a.png", gcsBaseURL, "eco")
	assert.Error(t, err)

	_, err = objectFromURL("http://localhost:9000/eco/", "http://localhost:9000", "eco")
	assert.Error(t, err)
}
