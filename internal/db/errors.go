// Package db persists conversation threads, business records and users in
// SQLite.
package db

import "errors"

// Sentinel errors for store operations. Check with errors.Is.
var (
	// ErrNotFound indicates the referenced row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthenticated indicates no principal was bound to the request.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrEmailTaken indicates a user with the same email already exists.
	ErrEmailTaken = errors.New("email already registered")
)
