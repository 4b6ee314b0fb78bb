package storage

import (
	"errors"
	"fmt"
)

// ============================================================================
// STORAGE ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.
// The handler layer maps these to HTTP status codes.

const (
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// ============================================================================
// STORAGE ERROR TYPE
// ============================================================================

// StorageError represents a storage-specific error with a code and message.
// It implements the domain.Error interface pattern for consistent HTTP status mapping.
type StorageError struct {
	Code    string
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *StorageError) ErrorMessage() string {
	return e.Message
}

// newStorageError creates a new storage error.
func newStorageError(code, message string) *StorageError {
	return &StorageError{Code: code, Message: message}
}

// ============================================================================
// STORAGE DOMAIN ERRORS
// ============================================================================

// ErrFileNotFound creates an error for when a file is not found.
func ErrFileNotFound(key string) error {
	return newStorageError(codeNotFound, fmt.Sprintf("file not found: %s", key))
}

// ErrInvalidKey creates an error for keys that are empty or leave the
// storage root.
func ErrInvalidKey(key string) error {
	return newStorageError(codeInvalid, fmt.Sprintf("invalid storage key: %q", key))
}

// IsNotFound reports whether err is a missing-file storage error.
func IsNotFound(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Code == codeNotFound
}
