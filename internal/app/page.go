package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_app/internal/adapters/observability"
	"hotel_app/internal/domain"
)

// PageService performs render passes. It keeps no per-request state, so one
// instance serves every caller concurrently.
type PageService struct {
	cfg      domain.PageConfig
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPageService(cfg domain.PageConfig, c domain.Cache, ttl time.Duration) *PageService {
	if c == nil {
		c = NopCache{}
	}
	return &PageService{cfg: cfg, cache: c, cacheTTL: ttl}
}

func (s *PageService) Config() domain.PageConfig { return s.cfg }

func (s *PageService) Render(ctx context.Context, f domain.Filters) (domain.PageView, error) {
	if err := f.Validate(); err != nil {
		return domain.PageView{}, err
	}
	observability.ObserveRender(f.City.String())

	key := cacheKey(f)
	want := domain.BuildView(s.cfg, f)
	var pv domain.PageView
	ok, err := s.cache.Get(ctx, key, &pv)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("page cache get failed")
	}
	if ok {
		if pv.Equal(want) {
			return pv, nil
		}
		// written by an instance with other page texts or config
		log.Info().Str("key", key).Msg("stale page cache entry replaced")
	}

	if err := s.cache.Set(ctx, key, want, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("page cache set failed")
	}
	return want, nil
}

// Invalidate drops the cached view for every selection.
func (s *PageService) Invalidate(ctx context.Context) error {
	for _, c := range domain.Cities() {
		for g := domain.MinGuests; g <= domain.MaxGuests; g++ {
			if err := s.cache.Del(ctx, cacheKey(domain.Filters{City: c, Guests: g})); err != nil {
				return fmt.Errorf("invalidate %s/%d: %w", c, g, err)
			}
		}
	}
	return nil
}

func cacheKey(f domain.Filters) string {
	return fmt.Sprintf("page:%s:%d", f.City, f.Guests)
}

// NopCache never stores anything; used when no Redis is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (NopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (NopCache) Del(context.Context, string) error                     { return nil }
