package auth

import (
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	ts := NewTokenStore(time.Hour)

	token, expires := ts.Issue()
	if token == "" {
		t.Fatal("empty token")
	}
	if !expires.After(time.Now()) {
		t.Errorf("expiry %v not in the future", expires)
	}

	if !ts.Valid(token) {
		t.Error("freshly issued token rejected")
	}
	if ts.Valid("made-up") {
		t.Error("unknown token accepted")
	}
}

func TestTokensAreUnique(t *testing.T) {
	ts := NewTokenStore(time.Hour)

	t1, _ := ts.Issue()
	t2, _ := ts.Issue()
	if t1 == t2 {
		t.Error("two logins produced the same token")
	}
	if !ts.Valid(t1) || !ts.Valid(t2) {
		t.Error("both tokens should stay valid")
	}
}

func TestLazyExpiry(t *testing.T) {
	ts := NewTokenStore(time.Millisecond)

	token, _ := ts.Issue()
	time.Sleep(10 * time.Millisecond)

	if ts.Valid(token) {
		t.Fatal("expired token accepted")
	}

	// Lookup removed the expired entry.
	ts.mu.Lock()
	_, ok := ts.tokens[token]
	ts.mu.Unlock()
	if ok {
		t.Error("expired token not deleted on lookup")
	}
}

func TestRevoke(t *testing.T) {
	ts := NewTokenStore(time.Hour)

	token, _ := ts.Issue()
	ts.Revoke(token)
	if ts.Valid(token) {
		t.Error("revoked token accepted")
	}
}

func TestCheckPassword(t *testing.T) {
	if !CheckPassword("hunter2", "hunter2") {
		t.Error("matching password rejected")
	}
	if CheckPassword("hunter", "hunter2") {
		t.Error("wrong password accepted")
	}
	if CheckPassword("", "hunter2") {
		t.Error("empty attempt accepted")
	}
}
