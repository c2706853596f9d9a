package yaratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yacache"
	"github.com/YaCodeDev/GoYaTgEntities/yaratelimit"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newLimiter(t *testing.T, limit uint32) (*yaratelimit.RateLimit, *fakeClock) {
	t.Helper()

	memory := yacache.NewMemory(yacache.NewMemoryContainer(), time.Minute)

	t.Cleanup(func() {
		_ = memory.Close()
	})

	clock := &fakeClock{now: time.Now()}

	limiter := yaratelimit.NewRateLimit(memory, limit, time.Minute)
	limiter.Now = clock.Now

	return limiter, clock
}

func TestRateLimit_Increment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("[Increment] bans over the limit", func(t *testing.T) {
		t.Parallel()

		limiter, _ := newLimiter(t, 3)

		for range 3 {
			banned, err := limiter.Increment(ctx, "10.0.0.1", "render")
			require.Nil(t, err)
			assert.False(t, banned)
		}

		banned, err := limiter.Increment(ctx, "10.0.0.1", "render")
		require.Nil(t, err)
		assert.True(t, banned)

		banned, err = limiter.Check(ctx, "10.0.0.1", "render")
		require.Nil(t, err)
		assert.True(t, banned)

		banned, err = limiter.Check(ctx, "10.0.0.2", "render")
		require.Nil(t, err)
		assert.False(t, banned)

		banned, err = limiter.Increment(ctx, "10.0.0.1", "resolve")
		require.Nil(t, err)
		assert.False(t, banned)
	})

	t.Run("[Increment] new window after rate", func(t *testing.T) {
		t.Parallel()

		limiter, clock := newLimiter(t, 1)

		_, err := limiter.Increment(ctx, "subject", "group")
		require.Nil(t, err)

		banned, err := limiter.Increment(ctx, "subject", "group")
		require.Nil(t, err)
		assert.True(t, banned)

		clock.now = clock.now.Add(time.Minute + time.Second)

		banned, err = limiter.Increment(ctx, "subject", "group")
		require.Nil(t, err)
		assert.False(t, banned)

		window, err := limiter.Get(ctx, "subject", "group")
		require.Nil(t, err)
		assert.Equal(t, uint32(1), window.Count)
		assert.Equal(t, clock.now.Unix(), window.FirstRequest)
	})

	t.Run("[Increment] zero limit bans everything", func(t *testing.T) {
		t.Parallel()

		limiter, _ := newLimiter(t, 0)

		banned, err := limiter.Increment(ctx, "subject", "group")
		require.Nil(t, err)
		assert.True(t, banned)
	})

	t.Run("[Increment] malformed window", func(t *testing.T) {
		t.Parallel()

		limiter, _ := newLimiter(t, 3)

		require.Nil(t, limiter.Cache.HSetEX(ctx, yaratelimit.FormatKey("subject", "group"), "window", "broken", time.Minute))

		_, err := limiter.Increment(ctx, "subject", "group")
		require.NotNil(t, err)
		assert.ErrorIs(t, err, yaratelimit.ErrMalformedWindow)
	})
}

func TestRateLimit_Redis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := yaratelimit.NewRateLimit(yacache.NewRedis(client), 2, time.Minute)

	banned, err := limiter.Increment(ctx, "10.0.0.1", "render")
	require.Nil(t, err)
	assert.False(t, banned)

	key := yaratelimit.FormatKey("10.0.0.1", "render")

	assert.True(t, mr.Exists(key))
	assert.Positive(t, mr.TTL(key))

	mr.FastForward(2 * time.Minute)

	_, err = limiter.Get(ctx, "10.0.0.1", "render")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, yacache.ErrNotFound)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rate-limit:render:10.0.0.1", yaratelimit.FormatKey("10.0.0.1", "render"))
	assert.Equal(t, "2,1726860000", yaratelimit.FormatValue(2, 1726860000))

	window, err := yaratelimit.ParseValue("2,1726860000")
	require.Nil(t, err)
	assert.Equal(t, yaratelimit.Window{Count: 2, FirstRequest: 1726860000}, *window)

	_, err = yaratelimit.ParseValue("2;1726860000")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, yaratelimit.ErrMalformedWindow)
}
