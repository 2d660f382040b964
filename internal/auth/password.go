package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the 10 rounds the hashes in production were created
// with; changing it would only affect new hashes but keep them in sync.
const bcryptCost = 10

// PasswordHasher wraps bcrypt hashing for local credentials.
type PasswordHasher struct{}

// NewPasswordHasher creates a password hasher.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash produces a salted digest. The salt is random per call, so hashing the
// same plaintext twice yields different digests.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is a
// mismatch, not an error.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
