package ports

import (
	"context"
	"io"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// CreateBookInput carries a new catalog entry plus its cover image stream.
// CoverExt is the file extension derived from the upload's media type
// (e.g. "png"), without the leading dot.
type CreateBookInput struct {
	Title    string
	Rating   float64
	Price    float64
	Cover    io.Reader
	CoverExt string
}

// CatalogService implements admin catalog management and the public listing.
type CatalogService interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	// CreateBook stores the cover image first; the book record is only
	// committed once the image write succeeded.
	CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error)
	// DeleteBook removes the record and then its stored cover file.
	DeleteBook(ctx context.Context, id string) error
}

// FileStore abstracts the public-directory filesystem: cover images written
// on book creation and book content streamed on download.
type FileStore interface {
	// SaveCover persists the image and returns its path relative to the
	// public directory.
	SaveCover(ext string, r io.Reader) (string, error)
	RemoveCover(rel string) error
	// BookContentPath returns the absolute path of the downloadable content
	// for a book, or an error when no content file exists.
	BookContentPath(bookID string) (string, error)
}
