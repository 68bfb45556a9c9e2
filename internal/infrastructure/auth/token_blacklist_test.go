package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_JTI(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	t.Run("unknown jti is not blacklisted", func(t *testing.T) {
		blacklisted, err := blacklist.IsBlacklisted(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("blacklisted jti is reported until its ttl elapses", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))

		blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("entry expires after its ttl", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-2", -time.Second))

		blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}

func TestInMemoryTokenBlacklist_UserInvalidation(t *testing.T) {
	blacklist := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	t.Run("user without invalidation keeps tokens valid", func(t *testing.T) {
		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", time.Now())
		require.NoError(t, err)
		assert.False(t, invalidated)
	})

	t.Run("tokens issued before invalidation are rejected", func(t *testing.T) {
		issuedAt := time.Now().Add(-time.Minute)
		require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedAt)
		require.NoError(t, err)
		assert.True(t, invalidated)
	})

	t.Run("tokens issued after invalidation stay valid", func(t *testing.T) {
		invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, invalidated)
	})
}
