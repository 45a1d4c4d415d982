package services

import (
	"errors"
	"fmt"

	"blogicum/app/repositories"
)

var (
	// ErrNotFound covers both missing records and records the caller may
	// not see.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the actor is not allowed to change a
	// resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("invalid input")
	// ErrInvalidCredentials is returned by Authenticate.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// lookupErr translates a repository miss into ErrNotFound and wraps
// anything else.
func lookupErr(what string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
