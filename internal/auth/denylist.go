package auth

import (
	"sync"
	"time"
)

// Denylist holds revoked tokens until their natural expiry. Logout is rare
// enough that an in-memory map with opportunistic pruning is all this needs;
// a restart clears it, which only shortens revocations, never extends them.
type Denylist struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

func NewDenylist() *Denylist {
	return &Denylist{tokens: make(map[string]time.Time)}
}

func (d *Denylist) Add(token string, expiry time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	for t, exp := range d.tokens {
		if exp.Before(now) {
			delete(d.tokens, t)
		}
	}
	d.tokens[token] = expiry
}

func (d *Denylist) Has(token string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	exp, ok := d.tokens[token]
	if !ok {
		return false
	}
	return exp.After(time.Now())
}
