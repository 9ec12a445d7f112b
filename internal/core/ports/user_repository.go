package ports

import (
	"context"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Cart and purchased-set updates are full replacements: the service layer
// reads, modifies, and writes back the whole sequence.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateCart replaces the user's cart with the given ordered sequence.
	UpdateCart(ctx context.Context, userID string, cart []domain.Book) error
	// UpdatePurchasedBooks replaces the user's purchased set.
	UpdatePurchasedBooks(ctx context.Context, userID string, books []domain.Book) error
}
