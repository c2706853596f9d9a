package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/config"
	"github.com/YaCodeDev/GoYaTgEntities/yaarchive"
	"github.com/YaCodeDev/GoYaTgEntities/yacache"
	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := yalogger.NewBaseLogger(nil).NewLogger()

	t.Run("[Cache] memory without redis address", func(t *testing.T) {
		t.Parallel()

		cache, err := openCache(ctx, &config.Config{}, log)
		require.Nil(t, err)

		t.Cleanup(func() {
			_ = cache.Close()
		})

		assert.IsType(t, &yacache.Memory{}, cache)
	})

	t.Run("[Cache] redis", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)

		cache, err := openCache(ctx, &config.Config{RedisAddr: mr.Addr()}, log)
		require.Nil(t, err)

		t.Cleanup(func() {
			_ = cache.Close()
		})

		assert.IsType(t, &yacache.Redis{}, cache)
		assert.Nil(t, cache.Ping(ctx))
	})

	t.Run("[Cache] unreachable redis gives up with the context", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()

		_, err := openCache(ctx, &config.Config{RedisAddr: addr}, log)
		require.NotNil(t, err)
	})
}

func TestOpenArchive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := yalogger.NewBaseLogger(nil).NewLogger()

	cfg := &config.Config{SQLitePath: filepath.Join(t.TempDir(), "archive.db")}

	archive, closeArchive, err := openArchive(cfg, log)
	require.Nil(t, err)

	require.Nil(t, archive.Store(ctx, &yaarchive.StoredMessage{
		ChatID:    1,
		MessageID: 2,
		Text:      "persisted",
		Entities:  []yaentity.Entity{yaentity.Underline(0, 9)},
	}))

	closeArchive()

	archive, closeArchive, err = openArchive(cfg, log)
	require.Nil(t, err)

	defer closeArchive()

	stored, err := archive.Load(ctx, 1, 2)
	require.Nil(t, err)
	assert.Equal(t, "persisted", stored.Text)
	require.Len(t, stored.Entities, 1)
	assert.True(t, stored.Entities[0].Equal(yaentity.Underline(0, 9)))
}
