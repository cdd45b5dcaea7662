package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrNoCode)

	first := Entry{Code: "111111", ExpiresAt: time.Now().Add(TTL)}
	require.NoError(t, s.Put(ctx, "a@x.com", first))

	got, err := s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	// One pending code per email: a new request replaces the old one.
	second := Entry{Code: "222222", ExpiresAt: time.Now().Add(TTL)}
	require.NoError(t, s.Put(ctx, "a@x.com", second))
	got, err = s.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", got.Code)

	require.NoError(t, s.Delete(ctx, "a@x.com"))
	_, err = s.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrNoCode)

	// Deleting a missing entry is fine.
	assert.NoError(t, s.Delete(ctx, "a@x.com"))
}

func TestEntryExpired(t *testing.T) {
	now := time.Now()
	e := Entry{Code: "123456", ExpiresAt: now.Add(TTL)}

	assert.False(t, e.Expired(now))
	assert.False(t, e.Expired(now.Add(TTL)), "boundary instant still valid")
	assert.True(t, e.Expired(now.Add(TTL+time.Second)))
}
