package repository

import "errors"

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned by UserRepository.Create when the email
	// uniqueness constraint is violated.
	ErrEmailTaken = errors.New("email already registered")
)
