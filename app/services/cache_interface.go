package services

import (
	"context"
)

// CacheStats holds cache counters.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService stores encoded query results under a request fingerprint.
type ICacheService interface {
	// Get returns the cached payload for key
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores payload under key
	Set(ctx context.Context, key string, payload []byte) error

	// Delete removes key
	Delete(ctx context.Context, key string) error

	// Clear removes every entry
	Clear(ctx context.Context) error

	// GetStats returns hit/miss counters
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close releases connections, if any
	Close() error
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
