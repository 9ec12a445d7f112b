package ports

import "context"

// PurchaseService merges the cart into the purchased set and gates access
// to purchased content.
type PurchaseService interface {
	// Purchase appends each cart book to the purchased set unless a book
	// with the same id is already there, persists the purchased set, and
	// then clears the cart. Returns the number of newly purchased books.
	Purchase(ctx context.Context, userID string) (int, error)
	// ContentPath authorises a download: the path of the book's content
	// file when bookID is in the caller's purchased set, otherwise
	// domain.ErrNotPurchased. Anonymous callers are always denied.
	ContentPath(ctx context.Context, userID, bookID string) (string, error)
}
