package auth

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHasher is used when no custom hasher provided in service config
var DefaultHasher PasswordHasher = BcryptHasher{}

// Bcrypt password hasher
// Passwords are pre-hashed with sha256 to lift bcrypt's 72 byte input limit
type BcryptHasher struct{}

func (h BcryptHasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	return string(hash), err
}

// Compare returns error on any mismatch, including malformed or truncated
// stored hashes. It never panics on corrupted input.
func (h BcryptHasher) Compare(hashedPassword string, password string) error {
	sum := sha256.Sum256([]byte(password))
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), sum[:])
}
