package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// CartService manages a user's cart. Mutations are full read-modify-write
// cycles on the stored cart, serialized per user through the shared lock
// table.
type CartService struct {
	users  ports.UserRepository
	books  ports.BookRepository
	locks  *UserLocks
	logger zerolog.Logger
}

func NewCartService(users ports.UserRepository, books ports.BookRepository, locks *UserLocks, logger zerolog.Logger) *CartService {
	return &CartService{users: users, books: books, locks: locks, logger: logger}
}

func (s *CartService) List(ctx context.Context, userID string) ([]domain.Book, error) {
	if userID == "" {
		return nil, domain.ErrNotSignedIn
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Cart == nil {
		return []domain.Book{}, nil
	}
	return user.Cart, nil
}

// Add appends a snapshot of the book to the cart. The book must exist; a
// missing id is an error, never a silent null entry.
func (s *CartService) Add(ctx context.Context, userID, bookID string) error {
	if userID == "" {
		return domain.ErrNotSignedIn
	}

	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	cart := append(user.Cart, *book)
	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return err
	}

	s.logger.Debug().Str("user_id", userID).Str("book_id", bookID).Msg("book added to cart")
	return nil
}

// Remove drops exactly the first cart entry whose id matches, keeping the
// order of the remaining entries.
func (s *CartService) Remove(ctx context.Context, userID, bookID string) error {
	if userID == "" {
		return domain.ErrNotSignedIn
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	idx := -1
	for i, b := range user.Cart {
		if b.ID == bookID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotInCart
	}

	cart := append(user.Cart[:idx:idx], user.Cart[idx+1:]...)
	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return err
	}

	s.logger.Debug().Str("user_id", userID).Str("book_id", bookID).Msg("book removed from cart")
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrNotSignedIn
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.users.UpdateCart(ctx, userID, []domain.Book{})
}
