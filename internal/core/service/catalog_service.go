package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// CatalogService implements the public book listing and admin-only
// catalog mutation.
type CatalogService struct {
	books  ports.BookRepository
	files  ports.FileStore
	logger zerolog.Logger
}

func NewCatalogService(books ports.BookRepository, files ports.FileStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{books: books, files: files, logger: logger}
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.books.FindAll(ctx)
}

// CreateBook writes the cover image before committing the record: a failed
// image write aborts creation, a failed insert removes the orphaned image.
func (s *CatalogService) CreateBook(ctx context.Context, input ports.CreateBookInput) (*domain.Book, error) {
	if input.Title == "" || input.Cover == nil {
		return nil, domain.ErrMissingFields
	}

	cover, err := s.files.SaveCover(input.CoverExt, input.Cover)
	if err != nil {
		return nil, fmt.Errorf("store cover: %w", err)
	}

	book := &domain.Book{
		Title:     input.Title,
		Rating:    input.Rating,
		Price:     input.Price,
		Cover:     cover,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.books.Insert(ctx, book)
	if err != nil {
		if rmErr := s.files.RemoveCover(cover); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("cover", cover).Msg("failed to remove orphaned cover")
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}

	s.logger.Info().Str("book_id", created.ID).Str("title", created.Title).Msg("book created")
	return created, nil
}

// DeleteBook removes the record and then its cover file. A missing cover
// file is logged, not fatal: the record is already gone.
func (s *CatalogService) DeleteBook(ctx context.Context, id string) error {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.files.RemoveCover(book.Cover); err != nil {
		s.logger.Warn().Err(err).Str("book_id", id).Str("cover", book.Cover).Msg("failed to delete cover file")
	}

	s.logger.Info().Str("book_id", id).Msg("book deleted")
	return nil
}
