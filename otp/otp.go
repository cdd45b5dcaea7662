// Package otp is the time-bounded single-use code cache that gates
// registration. At most one entry lives per email: requesting a new code
// overwrites the previous one, and a consumed or expired entry is deleted.
//
// The interface is deliberately narrow so the backing can be the in-process
// map (single instance) or Redis (horizontally scaled deployments) without
// the auth handlers noticing.
package otp

import (
	"context"
	"errors"
	"sync"
	"time"
)

// TTL is how long a requested code stays valid.
const TTL = 10 * time.Minute

// ErrNoCode — no pending code exists for the email.
var ErrNoCode = errors.New("no pending code")

// Entry is a pending registration code. Expiry is checked against ExpiresAt
// by the consumer, so both backends report expiry identically.
type Entry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry is past its validity window at t.
func (e Entry) Expired(t time.Time) bool {
	return t.After(e.ExpiresAt)
}

// Store holds pending codes keyed by email.
type Store interface {
	// Put stores the entry, overwriting any previous code for the email.
	Put(ctx context.Context, email string, e Entry) error
	// Get returns the pending entry or ErrNoCode.
	Get(ctx context.Context, email string) (Entry, error)
	// Delete removes the entry; deleting a missing entry is not an error.
	Delete(ctx context.Context, email string) error
}

// MemoryStore is the process-local backend. Concurrent Puts for one email
// race harmlessly: last write wins and consumers always compare the latest
// stored code.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Put(_ context.Context, email string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return Entry{}, ErrNoCode
	}
	return e, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
