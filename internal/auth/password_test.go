package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, VerifyPassword(hash, "s3cret"))
	assert.Error(t, VerifyPassword(hash, "wrong"))
}

func TestVerifyPasswordLegacyPlaintext(t *testing.T) {
	// Rows migrated from the old system store the raw password.
	assert.NoError(t, VerifyPassword("plaintext", "plaintext"))
	assert.Error(t, VerifyPassword("plaintext", "other"))
	assert.Error(t, VerifyPassword("", "anything"))
}
