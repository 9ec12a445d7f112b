package ports

import (
	"context"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// BookRepository defines persistence operations for the book catalog.
type BookRepository interface {
	Insert(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	FindAll(ctx context.Context) ([]domain.Book, error)
	// Delete removes a book by id. domain.ErrBookNotFound when absent.
	Delete(ctx context.Context, id string) error
}
