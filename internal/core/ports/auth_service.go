package ports

import (
	"context"
	"time"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// SignupInput carries the data needed to create an account.
type SignupInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// AuthService implements account creation, sign-in and sign-out.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	// Signin verifies credentials and returns a signed token plus the user.
	Signin(ctx context.Context, email, password string) (string, *domain.User, error)
	// Signout revokes the token identified by jti until expiresAt.
	Signout(ctx context.Context, jti string, expiresAt time.Time) error
	// CurrentUser resolves an authenticated identity to its stored record.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	// TokenTTL is the lifetime of issued tokens (drives the cookie expiry).
	TokenTTL() time.Duration
}

// TokenRevoker is the revocation store consulted on every authenticated
// request and written on sign-out.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
