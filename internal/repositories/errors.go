package repositories

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when the staff_accounts email uniqueness
	// constraint is violated
	ErrDuplicateEmail = errors.New("email already exists")
)
