package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

func newCartFixture(t *testing.T) (*CartService, *stubUserRepo, *stubBookRepo, string) {
	t.Helper()
	users := newStubUserRepo()
	books := newStubBookRepo()
	svc := NewCartService(users, books, NewUserLocks(0), zerolog.Nop())

	user, err := users.Create(context.Background(), &domain.User{Email: "reader@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return svc, users, books, user.ID
}

func addBook(t *testing.T, books *stubBookRepo, title string) string {
	t.Helper()
	b, err := books.Insert(context.Background(), &domain.Book{Title: title, Rating: 4.5, Price: 9.99, Cover: "img/bookcovers/x.png"})
	if err != nil {
		t.Fatalf("insert book: %v", err)
	}
	return b.ID
}

func TestCartService_RequiresIdentity(t *testing.T) {
	svc, _, _, _ := newCartFixture(t)

	if _, err := svc.List(context.Background(), ""); err != domain.ErrNotSignedIn {
		t.Fatalf("List: expected ErrNotSignedIn, got %v", err)
	}
	if err := svc.Add(context.Background(), "", "b1"); err != domain.ErrNotSignedIn {
		t.Fatalf("Add: expected ErrNotSignedIn, got %v", err)
	}
	if err := svc.Remove(context.Background(), "", "b1"); err != domain.ErrNotSignedIn {
		t.Fatalf("Remove: expected ErrNotSignedIn, got %v", err)
	}
	if err := svc.Clear(context.Background(), ""); err != domain.ErrNotSignedIn {
		t.Fatalf("Clear: expected ErrNotSignedIn, got %v", err)
	}
}

func TestCartService_List_EmptyCartIsValid(t *testing.T) {
	svc, _, _, userID := newCartFixture(t)

	cart, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if cart == nil || len(cart) != 0 {
		t.Fatalf("expected empty cart, got %v", cart)
	}
}

func TestCartService_Add_SnapshotsBook(t *testing.T) {
	svc, users, books, userID := newCartFixture(t)
	bookID := addBook(t, books, "Dune")

	if err := svc.Add(context.Background(), userID, bookID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// A later catalog edit must not change the cart entry.
	books.books[bookID].Price = 99.99

	user, _ := users.FindByID(context.Background(), userID)
	if len(user.Cart) != 1 {
		t.Fatalf("expected 1 cart entry, got %d", len(user.Cart))
	}
	if user.Cart[0].Price != 9.99 {
		t.Fatalf("cart entry should be a snapshot; price changed to %v", user.Cart[0].Price)
	}
}

func TestCartService_Add_UnknownBook(t *testing.T) {
	svc, users, _, userID := newCartFixture(t)

	if err := svc.Add(context.Background(), userID, "missing"); err != domain.ErrBookNotFound {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}

	user, _ := users.FindByID(context.Background(), userID)
	if len(user.Cart) != 0 {
		t.Fatalf("cart must not gain a null entry, got %d entries", len(user.Cart))
	}
}

func TestCartService_AddThenRemove_RestoresPriorState(t *testing.T) {
	svc, _, books, userID := newCartFixture(t)
	first := addBook(t, books, "Dune")
	second := addBook(t, books, "Hyperion")

	if err := svc.Add(context.Background(), userID, first); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	before, _ := svc.List(context.Background(), userID)

	if err := svc.Add(context.Background(), userID, second); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Remove(context.Background(), userID, second); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	after, _ := svc.List(context.Background(), userID)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("add+remove should be inverse ops: before %v, after %v", before, after)
	}
}

func TestCartService_Remove_OnlyFirstMatch(t *testing.T) {
	svc, _, books, userID := newCartFixture(t)
	dup := addBook(t, books, "Dune")
	other := addBook(t, books, "Hyperion")

	for _, id := range []string{dup, other, dup} {
		if err := svc.Add(context.Background(), userID, id); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	if err := svc.Remove(context.Background(), userID, dup); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	cart, _ := svc.List(context.Background(), userID)
	if len(cart) != 2 {
		t.Fatalf("expected 2 entries after removing one duplicate, got %d", len(cart))
	}
	if cart[0].ID != other || cart[1].ID != dup {
		t.Fatalf("remaining order not preserved: %v", cart)
	}
}

func TestCartService_Remove_NotInCart(t *testing.T) {
	svc, _, books, userID := newCartFixture(t)
	bookID := addBook(t, books, "Dune")

	// Empty cart: target missing is an error, not a crash.
	if err := svc.Remove(context.Background(), userID, bookID); err != domain.ErrNotInCart {
		t.Fatalf("expected ErrNotInCart on empty cart, got %v", err)
	}

	if err := svc.Add(context.Background(), userID, bookID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Remove(context.Background(), userID, "someone-else"); err != domain.ErrNotInCart {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}
}

func TestCartService_Clear(t *testing.T) {
	svc, _, books, userID := newCartFixture(t)
	bookID := addBook(t, books, "Dune")

	_ = svc.Add(context.Background(), userID, bookID)
	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	cart, _ := svc.List(context.Background(), userID)
	if len(cart) != 0 {
		t.Fatalf("expected empty cart after clear, got %d entries", len(cart))
	}
}
