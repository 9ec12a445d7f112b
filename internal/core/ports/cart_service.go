package ports

import (
	"context"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// CartService manages a user's in-progress selection. Every operation
// requires an authenticated identity; an empty userID yields
// domain.ErrNotSignedIn.
type CartService interface {
	// List returns the ordered cart. An empty cart is a valid empty slice.
	List(ctx context.Context, userID string) ([]domain.Book, error)
	// Add looks up the book and appends a snapshot of it to the cart.
	// domain.ErrBookNotFound when the id does not exist.
	Add(ctx context.Context, userID, bookID string) error
	// Remove deletes exactly the first cart entry matching bookID,
	// preserving the order of the rest. domain.ErrNotInCart when absent.
	Remove(ctx context.Context, userID, bookID string) error
	Clear(ctx context.Context, userID string) error
}
