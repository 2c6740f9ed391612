package sqlstore

import (
	"context"
	"fmt"

	"github.com/goliatone/go-chpp/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const latestGenerationCacheKey = "go-chpp::generation::v1::latest_completed"

// CachedGenerationStore fronts a generation store with a read cache for the
// latest completed lookup. Readers hit that lookup on every query while the
// underlying row only changes when a sync run finishes.
type CachedGenerationStore struct {
	base  core.GenerationStore
	cache repositorycache.CacheService
}

func NewCachedGenerationStore(
	base core.GenerationStore,
	cacheService repositorycache.CacheService,
) (*CachedGenerationStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base generation store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: generation cache service is required")
	}
	return &CachedGenerationStore{base: base, cache: cacheService}, nil
}

func (s *CachedGenerationStore) Create(ctx context.Context, gen core.Generation) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached generation store is not configured")
	}
	return s.base.Create(ctx, gen)
}

func (s *CachedGenerationStore) Complete(ctx context.Context, id string, status core.GenerationStatus) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached generation store is not configured")
	}
	if err := s.base.Complete(ctx, id, status); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, latestGenerationCacheKey); err != nil {
		return err
	}
	return nil
}

func (s *CachedGenerationStore) LatestCompleted(ctx context.Context) (core.Generation, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Generation{}, fmt.Errorf("sqlstore: cached generation store is not configured")
	}
	gen, err := repositorycache.GetOrFetch(ctx, s.cache, latestGenerationCacheKey, func(ctx context.Context) (core.Generation, error) {
		return s.base.LatestCompleted(ctx)
	})
	if err != nil {
		return core.Generation{}, err
	}
	return gen, nil
}
