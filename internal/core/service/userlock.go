package service

import (
	"hash/fnv"
	"sync"
)

const defaultStripes = 64

// UserLocks serializes cart and purchase mutations per user. Both services
// must share one instance so a purchase cannot interleave with a cart write
// for the same user. Striping keeps the table bounded: users are mapped to
// a fixed set of mutexes by fnv32 hash of their id.
type UserLocks struct {
	stripes []sync.Mutex
}

// NewUserLocks creates a lock table with n stripes. If n <= 0,
// defaultStripes is used.
func NewUserLocks(n int) *UserLocks {
	if n <= 0 {
		n = defaultStripes
	}
	return &UserLocks{stripes: make([]sync.Mutex, n)}
}

// Lock acquires the stripe for userID and returns its unlock func.
func (l *UserLocks) Lock(userID string) func() {
	mu := &l.stripes[l.stripeIndex(userID)]
	mu.Lock()
	return mu.Unlock
}

// stripeIndex maps a user id deterministically to a stripe.
func (l *UserLocks) stripeIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(l.stripes)
}
