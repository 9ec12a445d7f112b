package domain

import "errors"

var (
	ErrUserExists         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidRole        = errors.New("invalid role")

	// ErrNotSignedIn is the missing-credential case: the request never
	// carried a token. A present-but-bad token is rejected by the auth
	// middleware before any service runs, with its own message.
	ErrNotSignedIn = errors.New("not signed in")
	ErrForbidden   = errors.New("access forbidden")

	ErrBookNotFound = errors.New("book not found")
	ErrNotInCart    = errors.New("book not found in cart")
	ErrNotPurchased = errors.New("book not purchased")
)
