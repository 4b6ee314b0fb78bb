package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid staff credentials")
	ErrInvalidHash        = errors.New("staff password hash is not a bcrypt hash")
)

// StaffCredentials verifies the single staff account that may look up and
// reprint tickets at the kiosk.
type StaffCredentials struct {
	username string
	hash     string
}

// NewStaffCredentials creates a verifier for username and a bcrypt hash
// produced by HashPassword.
func NewStaffCredentials(username, hash string) (*StaffCredentials, error) {
	if username == "" {
		return nil, fmt.Errorf("staff username is required")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	return &StaffCredentials{username: username, hash: hash}, nil
}

// Verify checks a username and password. The password hash is always
// compared so a wrong username takes as long as a wrong password.
func (c *StaffCredentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1

	err := VerifyPassword(password, c.hash)
	if errors.Is(err, ErrPasswordMismatch) || (err == nil && !userOK) {
		return ErrInvalidCredentials
	}
	return err
}
