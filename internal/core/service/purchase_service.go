package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// PurchaseService merges the cart into the purchased set and authorises
// downloads. It shares the user lock table with CartService so a purchase
// never interleaves with a cart mutation for the same user.
type PurchaseService struct {
	users  ports.UserRepository
	files  ports.FileStore
	locks  *UserLocks
	logger zerolog.Logger
}

func NewPurchaseService(users ports.UserRepository, files ports.FileStore, locks *UserLocks, logger zerolog.Logger) *PurchaseService {
	return &PurchaseService{users: users, files: files, locks: locks, logger: logger}
}

// Purchase adds each cart book to the purchased set, deduplicated by book
// id, then clears the cart. The purchased update is persisted before the
// cart clear: a crash between the two writes leaves the books still in the
// cart (re-purchasable, deduplicated on retry) rather than losing the
// purchase.
func (s *PurchaseService) Purchase(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, domain.ErrNotSignedIn
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(user.Cart) == 0 {
		return 0, nil
	}

	owned := make(map[string]struct{}, len(user.PurchasedBooks))
	for _, b := range user.PurchasedBooks {
		owned[b.ID] = struct{}{}
	}

	merged := append([]domain.Book{}, user.PurchasedBooks...)
	added := 0
	for _, b := range user.Cart {
		if _, ok := owned[b.ID]; ok {
			continue
		}
		owned[b.ID] = struct{}{}
		merged = append(merged, b)
		added++
	}

	if err := s.users.UpdatePurchasedBooks(ctx, userID, merged); err != nil {
		return 0, err
	}
	if err := s.users.UpdateCart(ctx, userID, []domain.Book{}); err != nil {
		// Purchase is recorded; the stale cart entries dedupe away on retry.
		s.logger.Error().Err(err).Str("user_id", userID).Msg("cart clear failed after purchase")
		return added, err
	}

	s.logger.Info().Str("user_id", userID).Int("books", added).Msg("purchase completed")
	return added, nil
}

// ContentPath authorises a download by purchased-set membership.
func (s *PurchaseService) ContentPath(ctx context.Context, userID, bookID string) (string, error) {
	if userID == "" {
		return "", domain.ErrNotSignedIn
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.HasPurchased(bookID) {
		return "", domain.ErrNotPurchased
	}

	return s.files.BookContentPath(bookID)
}
