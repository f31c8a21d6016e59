package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/finsearch/internal/domain"
	"github.com/utafrali/finsearch/internal/repository"
)

// keyPrefix scopes cached settings to their own cache region so
// invalidation never touches unrelated keys.
const keyPrefix = "finsearch:settings:"

// Provider serves per-shop plugin settings, caching them in Redis in front
// of the settings store. A nil Redis client disables caching.
type Provider struct {
	store  repository.SettingsStore
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewProvider creates a settings provider.
func NewProvider(store repository.SettingsStore, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the settings for a shop, preferring the cache. Cache failures
// degrade to a store read; they never fail the request.
func (p *Provider) Get(ctx context.Context, shopID int64) (*domain.Settings, error) {
	key := cacheKey(shopID)

	if p.cache != nil {
		data, err := p.cache.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var s domain.Settings
			if err := json.Unmarshal(data, &s); err == nil {
				return &s, nil
			}
			p.logger.WarnContext(ctx, "corrupt cached settings, reloading",
				slog.Int64("shop_id", shopID),
			)
		case !errors.Is(err, redis.Nil):
			p.logger.WarnContext(ctx, "settings cache read failed",
				slog.String("error", err.Error()),
			)
		}
	}

	settings, err := p.store.GetSettings(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if data, err := json.Marshal(settings); err == nil {
			if err := p.cache.Set(ctx, key, data, p.ttl).Err(); err != nil {
				p.logger.WarnContext(ctx, "settings cache write failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return settings, nil
}

// Invalidate removes cached settings for one shop, or for all shops when
// shopID <= 0. Only the settings cache region is touched.
func (p *Provider) Invalidate(ctx context.Context, shopID int64) error {
	if p.cache == nil {
		return nil
	}

	if shopID > 0 {
		if err := p.cache.Del(ctx, cacheKey(shopID)).Err(); err != nil {
			return fmt.Errorf("invalidate settings cache: %w", err)
		}
		return nil
	}

	iter := p.cache.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := p.cache.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("invalidate settings cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan settings cache: %w", err)
	}
	return nil
}

func cacheKey(shopID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, shopID)
}
