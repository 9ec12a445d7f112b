package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // by id
	byEmail map[string]string       // email -> id
	nextID  int
	ops     []string // ordered log of mutating calls
	cartErr error    // if set, UpdateCart returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Cart = append([]domain.Book{}, u.Cart...)
	clone.PurchasedBooks = append([]domain.Book{}, u.PurchasedBooks...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	created := cloneUser(user)
	if created.ID == "" {
		r.nextID++
		created.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	r.users[created.ID] = cloneUser(created)
	r.byEmail[created.Email] = created.ID
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateCart(_ context.Context, userID string, cart []domain.Book) error {
	if r.cartErr != nil {
		return r.cartErr
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Cart = append([]domain.Book{}, cart...)
	r.ops = append(r.ops, "update_cart")
	return nil
}

func (r *stubUserRepo) UpdatePurchasedBooks(_ context.Context, userID string, books []domain.Book) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PurchasedBooks = append([]domain.Book{}, books...)
	r.ops = append(r.ops, "update_purchased")
	return nil
}

type stubBookRepo struct {
	books     map[string]*domain.Book
	nextID    int
	insertErr error
	calls     *[]string // optional shared call log
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]*domain.Book)}
}

func (r *stubBookRepo) record(call string) {
	if r.calls != nil {
		*r.calls = append(*r.calls, call)
	}
}

func (r *stubBookRepo) Insert(_ context.Context, book *domain.Book) (*domain.Book, error) {
	r.record("insert")
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	created := *book
	r.nextID++
	created.ID = fmt.Sprintf("book_%d", r.nextID)
	stored := created
	r.books[created.ID] = &stored
	return &created, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookRepo) FindAll(_ context.Context) ([]domain.Book, error) {
	out := []domain.Book{}
	for _, b := range r.books {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

type stubFileStore struct {
	saved    []string
	removed  []string
	saveErr  error
	contents map[string]string // bookID -> content path
	calls    *[]string
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{contents: make(map[string]string)}
}

func (s *stubFileStore) record(call string) {
	if s.calls != nil {
		*s.calls = append(*s.calls, call)
	}
}

func (s *stubFileStore) SaveCover(ext string, r io.Reader) (string, error) {
	s.record("save_cover")
	if s.saveErr != nil {
		return "", s.saveErr
	}
	_, _ = io.Copy(io.Discard, r)
	rel := fmt.Sprintf("img/bookcovers/cover_%d.%s", len(s.saved)+1, ext)
	s.saved = append(s.saved, rel)
	return rel, nil
}

func (s *stubFileStore) RemoveCover(rel string) error {
	s.record("remove_cover")
	s.removed = append(s.removed, rel)
	return nil
}

func (s *stubFileStore) BookContentPath(bookID string) (string, error) {
	p, ok := s.contents[bookID]
	if !ok {
		return "", fmt.Errorf("book content: no file for %s", bookID)
	}
	return p, nil
}

type stubRevoker struct {
	revoked map[string]bool
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]bool)}
}

func (r *stubRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	r.revoked[jti] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return r.revoked[jti], nil
}
