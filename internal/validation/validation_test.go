package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	email, err := NormalizeEmail("  Ana@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)

	for _, bad := range []string{"", "   ", "ana", "ana@", "Ana <ana@example.com>", strings.Repeat("a", 250) + "@x.io"} {
		_, err := NormalizeEmail(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct-horse-battery"))

	assert.EqualError(t, ValidatePassword("short"), "password must be at least 12 characters")
	assert.EqualError(t, ValidatePassword(strings.Repeat("x", 73)), "password must not exceed 72 bytes")
	assert.EqualError(t, ValidatePassword("MyPassword2024!"), "password is too common, please choose a stronger one")
}

func TestValidateText(t *testing.T) {
	assert.NoError(t, ValidateName("Ana"))
	assert.EqualError(t, ValidateName("  "), "name is required")
	assert.EqualError(t, ValidateName(strings.Repeat("n", 101)), "name is too long (max 100 characters)")

	assert.NoError(t, ValidateTitle(strings.Repeat("é", 200)))
	assert.EqualError(t, ValidateTitle(strings.Repeat("t", 201)), "title is too long (max 200 characters)")
}
