package yacache

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
	"weak"

	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
)

type memoryCacheItem struct {
	Value     string
	ExpiresAt time.Time
}

func (m *memoryCacheItem) isExpired(now time.Time) bool {
	return !m.ExpiresAt.IsZero() && !now.Before(m.ExpiresAt)
}

type childMemoryContainer map[string]*memoryCacheItem

// MemoryContainer is the raw storage of Memory: mainKey → childKey → item.
type MemoryContainer struct {
	HMap map[string]childMemoryContainer
}

func NewMemoryContainer() MemoryContainer {
	return MemoryContainer{
		HMap: make(map[string]childMemoryContainer),
	}
}

// Memory is a threadsafe, TTL-aware map-backed cache. A background goroutine drops
// expired entries every sweep interval until Close is called.
//
// Example:
//
//	memory := yacache.NewMemory(yacache.NewMemoryContainer(), 30*time.Second)
//	defer memory.Close()
type Memory struct {
	inner     MemoryContainer
	mutex     sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemory builds a Memory cache and starts the background sweeper.
// A zero ttl passed to HSetEX stores the value without expiration.
func NewMemory(data MemoryContainer, tickToClean time.Duration) *Memory {
	if data.HMap == nil {
		data = NewMemoryContainer()
	}

	if tickToClean <= 0 {
		tickToClean = defaultSweepInterval
	}

	memory := &Memory{
		inner: data,
		done:  make(chan struct{}),
	}

	go cleanup(weak.Make(memory), tickToClean, memory.done)

	return memory
}

// cleanup holds only a weak pointer so an unreachable Memory can still be collected.
func cleanup(
	pointer weak.Pointer[Memory],
	tickToClean time.Duration,
	done <-chan struct{},
) {
	ticker := time.NewTicker(tickToClean)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			memory := pointer.Value()
			if memory == nil {
				return
			}

			memory.sweep(time.Now())
		case <-done:
			return
		}
	}
}

func (m *Memory) sweep(now time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for mainKey, childMap := range m.inner.HMap {
		for childKey, item := range childMap {
			if item.isExpired(now) {
				delete(childMap, childKey)
			}
		}

		if len(childMap) == 0 {
			delete(m.inner.HMap, mainKey)
		}
	}
}

// Raw returns the underlying MemoryContainer.
func (m *Memory) Raw() MemoryContainer {
	return m.inner
}

func (m *Memory) HSetEX(
	_ context.Context,
	mainKey string,
	childKey string,
	value string,
	ttl time.Duration,
) yaerrors.Error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	childMap, ok := m.inner.HMap[mainKey]
	if !ok {
		childMap = make(childMemoryContainer)
		m.inner.HMap[mainKey] = childMap
	}

	item := &memoryCacheItem{Value: value}
	if ttl > 0 {
		item.ExpiresAt = time.Now().Add(ttl)
	}

	childMap[childKey] = item

	return nil
}

func (m *Memory) HGet(
	_ context.Context,
	mainKey string,
	childKey string,
) (string, yaerrors.Error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	item, ok := m.inner.HMap[mainKey][childKey]
	if !ok || item.isExpired(time.Now()) {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrNotFound,
			fmt.Sprintf("[MEMORY] failed `HGET` by `%s:%s`", mainKey, childKey),
		)
	}

	return item.Value, nil
}

func (m *Memory) HExist(
	_ context.Context,
	mainKey string,
	childKey string,
) (bool, yaerrors.Error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	item, ok := m.inner.HMap[mainKey][childKey]

	return ok && !item.isExpired(time.Now()), nil
}

func (m *Memory) HDelSingle(
	_ context.Context,
	mainKey string,
	childKey string,
) yaerrors.Error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	childMap, ok := m.inner.HMap[mainKey]
	if !ok {
		return nil
	}

	delete(childMap, childKey)

	if len(childMap) == 0 {
		delete(m.inner.HMap, mainKey)
	}

	return nil
}

func (m *Memory) Ping(_ context.Context) yaerrors.Error {
	select {
	case <-m.done:
		return yaerrors.FromError(
			http.StatusInternalServerError,
			ErrFailedPing,
			"[MEMORY] cache is closed",
		)
	default:
		return nil
	}
}

// Close stops the sweeper. It is safe to call more than once.
func (m *Memory) Close() yaerrors.Error {
	m.closeOnce.Do(func() {
		close(m.done)
	})

	return nil
}
