package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStorageSessionStateAt(t *testing.T) {
	now := time.Now()

	session := &StorageSession{ChunksetsRemaining: 3, ExpiresAt: now.Add(time.Hour)}
	assert.Equal(t, SessionStateActive, session.StateAt(now))

	session.ChunksetsRemaining = 0
	assert.Equal(t, SessionStateExhausted, session.StateAt(now))

	// Expiry wins over exhaustion.
	session.ExpiresAt = now.Add(-time.Minute)
	assert.Equal(t, SessionStateExpired, session.StateAt(now))

	session.ChunksetsRemaining = 3
	assert.Equal(t, SessionStateExpired, session.StateAt(now))

	boundary := &StorageSession{ChunksetsRemaining: 1, ExpiresAt: now}
	assert.Equal(t, SessionStateExpired, boundary.StateAt(now), "expires_at is exclusive")
}

func TestPostLock(t *testing.T) {
	post := Post{ID: "p1", Title: "Members only", Body: "secret body"}

	locked := post.Lock(DenialTierTooLow)
	assert.True(t, locked.Locked)
	assert.Empty(t, locked.Body)
	assert.Equal(t, DenialTierTooLow, locked.Reason)
	assert.Equal(t, "Members only", locked.Title)

	open := post.Unlocked()
	assert.False(t, open.Locked)
	assert.Equal(t, "secret body", open.Body)
}
