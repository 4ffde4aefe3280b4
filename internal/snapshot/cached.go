package snapshot

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	productsKey   = "snapshot:products"
	categoriesKey = "snapshot:categories"

	MinTTL     = 20 * time.Second
	MaxTTL     = 60 * time.Second
	DefaultTTL = 30 * time.Second
)

// ClampTTL bounds ttl to [MinTTL, MaxTTL]. Zero selects DefaultTTL.
func ClampTTL(ttl time.Duration) time.Duration {
	switch {
	case ttl == 0:
		return DefaultTTL
	case ttl < MinTTL:
		return MinTTL
	case ttl > MaxTTL:
		return MaxTTL
	}
	return ttl
}

// CachedSource is a read-through cache in front of another Source. Cache
// errors are logged and fall back to the underlying source.
type CachedSource struct {
	src    Source
	cache  Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger

	// gen advances on every Invalidate. A fetch started under an older
	// generation may have read pre-write rows and must not be cached.
	gen atomic.Uint64
}

func NewCachedSource(src Source, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{
		src:    src,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedSource) Products(ctx context.Context) ([]models.Product, error) {
	return readThrough(ctx, s, productsKey, s.src.Products)
}

func (s *CachedSource) Categories(ctx context.Context) ([]models.Category, error) {
	return readThrough(ctx, s, categoriesKey, s.src.Categories)
}

// Invalidate drops both cached tables so the next read hits the store.
func (s *CachedSource) Invalidate(ctx context.Context) {
	s.gen.Add(1)
	s.group.Forget(productsKey)
	s.group.Forget(categoriesKey)
	if err := s.cache.Delete(ctx, productsKey, categoriesKey); err != nil {
		s.logger.Warn("snapshot invalidation failed", zap.Error(err))
	}
}

func readThrough[T any](ctx context.Context, s *CachedSource, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("snapshot cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		gen := s.gen.Load()
		rows, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if gen != s.gen.Load() {
			return rows, nil
		}
		if err := s.cache.Set(ctx, key, rows, s.ttl); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.String("key", key), zap.Error(err))
		}
		// An Invalidate that landed between the check and Set may have
		// deleted before we wrote.
		if gen != s.gen.Load() {
			if err := s.cache.Delete(ctx, key); err != nil {
				s.logger.Warn("snapshot invalidation failed", zap.String("key", key), zap.Error(err))
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}
