package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryEntry struct {
	payload  []byte
	storedAt time.Time
}

// MemoryCacheService is an in-process LRU cache with a per-entry TTL.
type MemoryCacheService struct {
	cache *lru.Cache[string, memoryEntry]
	ttl   time.Duration
	now   func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCacheService creates an LRU holding at most size entries. A ttl of
// zero keeps entries until they are evicted.
func NewMemoryCacheService(size int, ttl time.Duration) (*MemoryCacheService, error) {
	cache, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, fmt.Errorf("cannot create LRU cache: %w", err)
	}
	return &MemoryCacheService{
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}, nil
}

// Get returns the payload for key unless it has expired.
func (mcs *MemoryCacheService) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok := mcs.cache.Get(key)
	if !ok {
		mcs.misses.Add(1)
		return nil, false, nil
	}
	if mcs.isExpired(entry) {
		mcs.cache.Remove(key)
		mcs.misses.Add(1)
		return nil, false, nil
	}
	mcs.hits.Add(1)
	return entry.payload, true, nil
}

// Set stores payload under key.
func (mcs *MemoryCacheService) Set(ctx context.Context, key string, payload []byte) error {
	mcs.cache.Add(key, memoryEntry{payload: payload, storedAt: mcs.now()})
	return nil
}

// Delete removes key.
func (mcs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	mcs.cache.Remove(key)
	return nil
}

// Clear purges every entry.
func (mcs *MemoryCacheService) Clear(ctx context.Context) error {
	mcs.cache.Purge()
	return nil
}

// GetStats returns counters since start.
func (mcs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := mcs.hits.Load(), mcs.misses.Load()
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(mcs.cache.Len()),
	}, nil
}

// Close is a no-op for the in-memory cache.
func (mcs *MemoryCacheService) Close() error {
	return nil
}

func (mcs *MemoryCacheService) isExpired(e memoryEntry) bool {
	return mcs.ttl > 0 && mcs.now().Sub(e.storedAt) > mcs.ttl
}
