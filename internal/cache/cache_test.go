package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(Disable)
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedProfile) func() error {
		return func() error {
			fetches++
			dest.ID = 1
			dest.Username = "testuser"
			return nil
		}
	}

	var first cachedProfile
	require.NoError(t, Aside(ctx, UserKey(1), &first, UserTTL, fetch(&first)))
	assert.Equal(t, "testuser", first.Username)
	assert.Equal(t, 1, fetches)

	var second cachedProfile
	require.NoError(t, Aside(ctx, UserKey(1), &second, UserTTL, fetch(&second)))
	assert.Equal(t, "testuser", second.Username)
	assert.Equal(t, 1, fetches, "second read should be served from cache")
}

func TestAside_FetchErrorPropagatesAndNothingCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest cachedProfile
	fetchErr := assert.AnError
	err := Aside(ctx, UserKey(2), &dest, UserTTL, func() error { return fetchErr })
	assert.ErrorIs(t, err, fetchErr)
	assert.False(t, mr.Exists(UserKey(2)))
}

func TestInvalidateUser(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedProfile{ID: 3}, UserTTL))
	require.True(t, mr.Exists(UserKey(3)))

	InvalidateUser(ctx, 3)
	assert.False(t, mr.Exists(UserKey(3)))
}

func TestAside_NoClientDegradesToFetch(t *testing.T) {
	Disable()
	ctx := context.Background()

	fetches := 0
	var dest cachedProfile
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, MessageKey(9), &dest, MessageTTL, func() error {
			fetches++
			return nil
		}))
	}
	assert.Equal(t, 2, fetches, "every read goes to the source when cache is off")
}

func TestSetJSON_RespectsTTL(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, MessageKey(1), cachedProfile{ID: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(MessageKey(1)))
}
