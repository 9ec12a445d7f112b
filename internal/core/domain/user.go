package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the recognised access tiers.
// Roles are a closed enum; anything outside it is rejected at write time.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User models an account holder. Cart and PurchasedBooks hold snapshots of
// books taken at the time of the cart/purchase action, so later catalog
// edits never rewrite a user's history.
type User struct {
	ID             string    `json:"id"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	Cart           []Book    `json:"cart"`
	PurchasedBooks []Book    `json:"purchasedBooks"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasPurchased reports whether a book with the given id is in the user's
// purchased set. Membership is by book id, not object identity.
func (u *User) HasPurchased(bookID string) bool {
	for _, b := range u.PurchasedBooks {
		if b.ID == bookID {
			return true
		}
	}
	return false
}
