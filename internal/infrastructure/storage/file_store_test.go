package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStore_SaveAndRemoveCover(t *testing.T) {
	store := NewFileStore(t.TempDir())

	rel, err := store.SaveCover("png", strings.NewReader("image bytes"))
	if err != nil {
		t.Fatalf("SaveCover failed: %v", err)
	}
	if !strings.HasPrefix(rel, "img/bookcovers/") || !strings.HasSuffix(rel, ".png") {
		t.Fatalf("unexpected cover path %q", rel)
	}

	if err := store.RemoveCover(rel); err != nil {
		t.Fatalf("RemoveCover failed: %v", err)
	}
	if err := store.RemoveCover(rel); err == nil {
		t.Fatalf("expected error removing an already removed cover")
	}
}

func TestFileStore_SaveCover_ContentWritten(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)

	rel, err := store.SaveCover("jpeg", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("SaveCover failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stored cover unreadable: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Fatalf("unexpected cover content %q", data)
	}
}

func TestFileStore_RemoveCover_RejectsEscape(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if err := store.RemoveCover("../outside.txt"); err == nil {
		t.Fatalf("expected a path escaping the public dir to be rejected")
	}
}

func TestFileStore_BookContentPath(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)

	if _, err := store.BookContentPath("missing"); err == nil {
		t.Fatalf("expected error for missing content file")
	}

	booksDir := filepath.Join(root, "books")
	if err := os.MkdirAll(booksDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(booksDir, "b1.pdf"), []byte("pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	path, err := store.BookContentPath("b1")
	if err != nil {
		t.Fatalf("BookContentPath failed: %v", err)
	}
	if filepath.Base(path) != "b1.pdf" {
		t.Fatalf("unexpected content path %q", path)
	}
}
