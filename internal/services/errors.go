package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers. Handlers check
// these with errors.Is instead of matching error strings.
var (
	// ErrEmailTaken is returned by registration when the normalized email is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned by sign-in for both an unknown email
	// and a wrong password, so the response never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when an authenticated identity lacks the
	// privilege for the requested operation.
	ErrForbidden = errors.New("insufficient privileges")
)
