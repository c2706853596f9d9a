// Package yacache provides a small hash-shaped cache with two back-ends: an in-memory
// map protected by a RW-mutex and a Redis hash wrapper. Both back-ends expose the same
// API so callers can switch implementations without changing their code.
//
// Values live under a main key and a child key, mirroring Redis hashes:
//
//	memory := yacache.NewCache(yacache.NewMemoryContainer())
//	defer memory.Close()
//
//	_ = memory.HSetEX(ctx, "render:html", "9f86d081", "<b>hi</b>", time.Minute)
//	value, _ := memory.HGet(ctx, "render:html", "9f86d081")
//
// A missing value is reported as ErrNotFound with http.StatusNotFound.
package yacache

import (
	"context"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/redis/go-redis/v9"
)

const defaultSweepInterval = time.Minute

// Store is the back-end independent part of a cache.
type Store interface {
	// HSetEX sets (childKey, value) under mainKey and assigns a TTL. If the pair
	// already exists its value is overwritten and the TTL is refreshed.
	HSetEX(
		ctx context.Context,
		mainKey string,
		childKey string,
		value string,
		ttl time.Duration,
	) yaerrors.Error

	// HGet fetches a single field. A missing or expired field yields ErrNotFound.
	HGet(
		ctx context.Context,
		mainKey string,
		childKey string,
	) (string, yaerrors.Error)

	// HExist answers whether the specific childKey exists in the hash.
	HExist(
		ctx context.Context,
		mainKey string,
		childKey string,
	) (bool, yaerrors.Error)

	// HDelSingle deletes exactly one field. Deleting a missing field is not an error.
	HDelSingle(
		ctx context.Context,
		mainKey string,
		childKey string,
	) yaerrors.Error

	// Ping verifies that the cache is reachable.
	Ping(ctx context.Context) yaerrors.Error

	// Close releases resources held by the cache.
	Close() yaerrors.Error
}

// Cache is a Store that also exposes its concrete client.
type Cache[T Container] interface {
	Store

	// Raw exposes the concrete client, *redis.Client or MemoryContainer.
	Raw() T
}

// Container is the union of all back-end client types a cache can wrap.
type Container interface {
	*redis.Client | MemoryContainer
}

// NewCache creates the back-end matching the supplied container.
//
// Example:
//
//	memory := yacache.NewCache(yacache.NewMemoryContainer())
//	redis := yacache.NewCache(client)
func NewCache[T Container](container T) Cache[T] {
	switch _container := any(container).(type) {
	case *redis.Client:
		value, _ := any(NewRedis(_container)).(Cache[T])

		return value
	case MemoryContainer:
		value, _ := any(NewMemory(_container, defaultSweepInterval)).(Cache[T])

		return value
	default:
		value, _ := any(NewMemory(NewMemoryContainer(), defaultSweepInterval)).(Cache[T])

		return value
	}
}
