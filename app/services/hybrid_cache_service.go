package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// HybridCacheService chains an in-process L1 in front of a shared L2.
type HybridCacheService struct {
	l1     ICacheService
	l2     ICacheService
	logger *zap.Logger
}

// NewHybridCacheService creates a two-level cache.
func NewHybridCacheService(l1, l2 ICacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{l1: l1, l2: l2, logger: logger}
}

// Get tries L1, then L2. An L2 hit is copied back into L1.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, found, err := hcs.l1.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("L1 cache error, falling back to L2", zap.Error(err))
	} else if found {
		return payload, true, nil
	}

	payload, found, err = hcs.l2.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	if err := hcs.l1.Set(ctx, key, payload); err != nil {
		hcs.logger.Warn("L2->L1 sync failed", zap.Error(err), zap.String("key", key))
	}
	hcs.logger.Debug("L2 cache hit", zap.String("key", key))
	return payload, true, nil
}

// Set writes to both levels in parallel.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, payload []byte) error {
	return hcs.both(func(c ICacheService) error { return c.Set(ctx, key, payload) }, "set")
}

// Delete removes key from both levels.
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	return hcs.both(func(c ICacheService) error { return c.Delete(ctx, key) }, "delete")
}

// Clear empties both levels.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.both(func(c ICacheService) error { return c.Clear(ctx) }, "clear"); err != nil {
		return err
	}
	hcs.logger.Info("Cleared hybrid cache")
	return nil
}

// GetStats sums the counters of both levels.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	s1, err1 := hcs.l1.GetStats(ctx)
	s2, err2 := hcs.l2.GetStats(ctx)

	switch {
	case err1 != nil && err2 != nil:
		return nil, fmt.Errorf("both cache levels failed: %v, %v", err1, err2)
	case err1 != nil:
		return s2, nil
	case err2 != nil:
		return s1, nil
	}

	// an L1 miss followed by an L2 hit is a hit overall
	hits := s1.TotalHits + s2.TotalHits
	misses := s2.TotalMiss
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: s2.TotalItems,
	}, nil
}

// Close closes both levels.
func (hcs *HybridCacheService) Close() error {
	return hcs.both(func(c ICacheService) error { return c.Close() }, "close")
}

func (hcs *HybridCacheService) both(op func(ICacheService) error, name string) error {
	errCh := make(chan error, 2)
	for _, c := range []ICacheService{hcs.l1, hcs.l2} {
		go func(c ICacheService) {
			errCh <- op(c)
		}(c)
	}

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			hcs.logger.Warn("Cache operation failed", zap.String("op", name), zap.Error(err))
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache %s errors: %v", name, errs)
	}
	return nil
}
