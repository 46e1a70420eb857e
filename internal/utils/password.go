package utils

import (
	"fmt" // Error wrapping

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// PasswordCost is the bcrypt work factor
const PasswordCost = 10

// HashPassword hashes plain with a fresh random salt
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares plain against a stored bcrypt hash
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
