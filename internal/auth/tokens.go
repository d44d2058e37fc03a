// Package auth implements the admin login: a shared-password check and an
// in-memory expiring bearer-token map.
package auth

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TokenStore holds issued bearer tokens with their expiry. Expired tokens
// are removed lazily on lookup; state is process-local and lost on restart,
// which only forces admins to log in again.
type TokenStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]time.Time
}

// NewTokenStore creates a TokenStore. ttl <= 0 defaults to 24 hours.
func NewTokenStore(ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenStore{
		ttl:    ttl,
		tokens: make(map[string]time.Time),
	}
}

// Issue creates a new opaque token and returns it with its expiry instant.
func (ts *TokenStore) Issue() (string, time.Time) {
	token := uuid.New().String()
	expires := time.Now().Add(ts.ttl)

	ts.mu.Lock()
	ts.tokens[token] = expires
	ts.mu.Unlock()

	return token, expires
}

// Valid reports whether token is known and unexpired. Expired entries are
// deleted on the way out.
func (ts *TokenStore) Valid(token string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	expires, ok := ts.tokens[token]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(ts.tokens, token)
		return false
	}
	return true
}

// Revoke removes a token (logout).
func (ts *TokenStore) Revoke(token string) {
	ts.mu.Lock()
	delete(ts.tokens, token)
	ts.mu.Unlock()
}

// CheckPassword compares a login attempt against the configured admin
// password in constant time.
func CheckPassword(attempt, password string) bool {
	return subtle.ConstantTimeCompare([]byte(attempt), []byte(password)) == 1
}
