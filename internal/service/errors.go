// Package service implements the domain operations: accounts, the follow
// graph, posts and likes, and the read-only feed queries composed over them.
// Each operation classifies its own expected failures into the closed error
// set below; anything else propagates wrapped and is treated as internal by
// the transport layer.
package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation (duplicate email, follow or like).
	ErrConflict = errors.New("conflict")
	// ErrForbidden marks an authenticated caller acting outside its ownership.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials marks a failed password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenMissing, ErrTokenInvalid and ErrTokenExpired are the token
	// verification outcomes.
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// classifyStorageError maps translated gorm errors onto the domain error
// set. Uniqueness conflicts are detected here, from the store's own
// constraint enforcement, never by a check-then-insert sequence. A foreign
// key violation means the referenced row is gone, which is a not-found from
// the caller's point of view. Everything else is unexpected and stays
// unclassified.
func classifyStorageError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrNotFound
	default:
		return fmt.Errorf("storage: %w", err)
	}
}
