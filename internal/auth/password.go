package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest staff password hash-password accepts.
const MinPasswordLength = 8

// staffHashCost is the bcrypt cost of hashes made by the hash-password
// command. Hashes of any valid cost are still accepted at login.
const staffHashCost = 12

var (
	ErrPasswordTooShort = fmt.Errorf("staff password must be at least %d characters", MinPasswordLength)
	ErrPasswordMismatch = errors.New("staff password does not match")
)

// HashPassword returns the bcrypt hash an operator puts in
// STAFF_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), staffHashCost)
	if err != nil {
		return "", fmt.Errorf("hash staff password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares password with a STAFF_PASSWORD_HASH value. A wrong
// password is ErrPasswordMismatch; any other error means the hash is unusable.
func VerifyPassword(password, hash string) error {
	switch err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("verify staff password: %w", err)
	}
}
