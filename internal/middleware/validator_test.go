package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageContentType(t *testing.T) {
	assert.NoError(t, ValidateImageContentType("image/jpeg"))
	assert.NoError(t, ValidateImageContentType("image/png; charset=binary"))
	assert.NoError(t, ValidateImageContentType("IMAGE/WEBP"))
	assert.NoError(t, ValidateImageContentType(""))
	assert.NoError(t, ValidateImageContentType("application/octet-stream"))

	assert.Error(t, ValidateImageContentType("text/html"))
	assert.Error(t, ValidateImageContentType("application/pdf"))
}

func TestValidateRockID(t *testing.T) {
	assert.NoError(t, ValidateRockID("1a2b3c4d-1111-2222-3333-444455556666"))
	assert.NoError(t, ValidateRockID("1700000000000")) // legacy timestamp id

	assert.Error(t, ValidateRockID(""))
	assert.Error(t, ValidateRockID("../../etc/passwd"))
	assert.Error(t, ValidateRockID("DROP TABLE rocks"))
}

func TestValidateThumbSize(t *testing.T) {
	assert.Equal(t, 300, ValidateThumbSize(0))
	assert.Equal(t, 300, ValidateThumbSize(-5))
	assert.Equal(t, 600, ValidateThumbSize(600))
	assert.Equal(t, 1024, ValidateThumbSize(5000))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00 "))
	assert.Equal(t, "a b", SanitizeString("a\x01 b"))
}

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(2, 1)
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}
