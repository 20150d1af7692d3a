package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/id"
	"github.com/wayfarerapp/wayfarer-server/internal/store"
)

func newTestSession(userID string, expiresIn time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:               id.MustGenerate(id.PrefixSession),
		UserID:           userID,
		RefreshTokenHash: "hash",
		ExpiresAt:        now.Add(expiresIn),
		CreatedAt:        now,
		LastSeenAt:       now,
		IPAddress:        "203.0.113.9",
		UserAgent:        "wayfarer-test/1.0",
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "sess@example.com")
	sess := newTestSession(u.ID, time.Hour)
	require.NoError(t, s.CreateSession(ctx, sess))

	got, err := s.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, "203.0.113.9", got.IPAddress)

	got.LastSeenAt = time.Now().Add(time.Minute)
	require.NoError(t, s.UpdateSession(ctx, got))

	require.NoError(t, s.DeleteSession(ctx, sess.ID))
	_, err = s.GetSession(ctx, sess.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "exp@example.com")
	expired := newTestSession(u.ID, -time.Hour)
	live := newTestSession(u.ID, time.Hour)
	require.NoError(t, s.CreateSession(ctx, expired))
	require.NoError(t, s.CreateSession(ctx, live))

	n, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.GetSession(ctx, expired.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetSession(ctx, live.ID)
	assert.NoError(t, err)
}
