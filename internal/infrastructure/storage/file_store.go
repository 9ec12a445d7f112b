package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

const (
	coversDir = "img/bookcovers"
	booksDir  = "books"
)

// FileStore implements ports.FileStore on the local filesystem rooted at
// the public directory. Cover images land under img/bookcovers and book
// content is read from books/<bookID>.pdf.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// SaveCover writes the image to a timestamped file and returns its path
// relative to the public directory. Nothing is left behind on failure.
func (s *FileStore) SaveCover(ext string, r io.Reader) (string, error) {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "img"
	}

	rel := filepath.ToSlash(filepath.Join(coversDir, fmt.Sprintf("%d.%s", time.Now().UnixNano(), ext)))
	abs := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create covers dir: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(abs)
		return "", fmt.Errorf("write cover file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("close cover file: %w", err)
	}

	return rel, nil
}

// RemoveCover deletes a stored cover. The path must resolve inside the
// public directory.
func (s *FileStore) RemoveCover(rel string) error {
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("remove cover: %w", err)
	}
	return nil
}

// BookContentPath returns the absolute path of a book's content file.
// A book without a content file cannot be downloaded.
func (s *FileStore) BookContentPath(bookID string) (string, error) {
	abs, err := s.resolve(filepath.Join(booksDir, bookID+".pdf"))
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("book content: %w", err)
	}
	return abs, nil
}

// resolve joins rel onto the root and rejects paths escaping it.
func (s *FileStore) resolve(rel string) (string, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", err
	}
	absClean, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	if absClean != rootAbs && !strings.HasPrefix(absClean, rootAbs+string(filepath.Separator)) {
		return "", domain.ErrForbidden
	}
	return absClean, nil
}
