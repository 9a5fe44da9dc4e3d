package pricing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/freightdesk/internal/domain/repository"
)

// CachedSource memoizes a remote DistanceSource in a DistanceCache.
// Cache failures are logged and do not prevent the remote lookup.
type CachedSource struct {
	remote DistanceSource
	cache  repository.DistanceCache
	logger *slog.Logger
}

func NewCachedSource(remote DistanceSource, cache repository.DistanceCache, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachedSource{remote: remote, cache: cache, logger: logger}
}

func (c *CachedSource) Name() string { return c.remote.Name() }

func (c *CachedSource) Lookup(ctx context.Context, origin, destination string) (int, error) {
	from, to := NormalizeCity(origin), NormalizeCity(destination)
	if from == "" || to == "" {
		return 0, ErrRouteNotFound
	}

	km, ok, err := c.cache.Get(ctx, from, to)
	if err != nil {
		c.logger.Warn("distance cache read failed", slog.String("route", from+"_"+to), slog.Any("error", err))
	} else if ok {
		return km, nil
	}

	km, err = c.remote.Lookup(ctx, origin, destination)
	if err != nil {
		return 0, fmt.Errorf("%s lookup: %w", c.remote.Name(), err)
	}

	if err := c.cache.Put(ctx, from, to, km); err != nil {
		c.logger.Warn("distance cache write failed", slog.String("route", from+"_"+to), slog.Any("error", err))
	}
	return km, nil
}
