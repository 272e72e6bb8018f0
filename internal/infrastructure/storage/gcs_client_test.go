package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("products", "image/png", true)
	assert.True(t, strings.HasPrefix(name, "public/products/"), name)
	assert.True(t, strings.HasSuffix(name, ".png"), name)

	name = ObjectName("public/products", "image/webp", false)
	assert.True(t, strings.HasPrefix(name, "public/products/"), name)
	assert.True(t, strings.HasSuffix(name, ".webp"), name)

	assert.True(t, strings.HasPrefix(ObjectName("avatars", "image/jpeg", false), "private/avatars/"))
}

func TestObjectFromURL(t *testing.T) {
	obj, err := ObjectFromURL("market", "https://storage.googleapis.com/market/public/products/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "public/products/a.jpg", obj)

	_, err = ObjectFromURL("market", "https://storage.googleapis.com/other/public/a.jpg")
	assert.Error(t, err)

	_, err = ObjectFromURL("market", "https://cdn.example/a.jpg")
	assert.Error(t, err)
}
