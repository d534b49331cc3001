package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against the stored value.
// Rows migrated from the legacy system hold raw plaintext instead of a
// bcrypt hash; those are matched with a constant-time comparison until the
// account is re-registered or the password is rotated.
func VerifyPassword(stored, plain string) error {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
