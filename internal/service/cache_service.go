package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"devimpact/pkg/metrics"
	"devimpact/pkg/redis"
	"go.uber.org/zap"
)

// CacheService provides cache-aside reads for the admin dashboard. A nil
// redis client disables caching and every read goes to the loader.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger

	// generation is bumped by InvalidateAdmin; loads that started before a
	// bump must not leave their result in the cache.
	generation atomic.Uint64
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// Enabled reports whether a Redis backend is configured
func (c *CacheService) Enabled() bool {
	return c != nil && c.redis != nil
}

// GetOrLoad reads key into dest. On a miss, a cache error or corrupted data it
// calls load, stores the result asynchronously and decodes it into dest.
// name is the unprefixed key used for metrics and logs. A result loaded while
// InvalidateAdmin ran in this process is returned but not kept in the cache.
func (c *CacheService) GetOrLoad(ctx context.Context, name string, ttl time.Duration, dest interface{}, load func(ctx context.Context) (interface{}, error)) error {
	if !c.Enabled() {
		return c.loadInto(ctx, dest, load)
	}

	cacheKey := c.redis.KeyBuilder.BuildKey(name)

	cachedData, err := c.redis.Get(ctx, cacheKey)
	switch {
	case err == nil && cachedData != "":
		if unmarshalErr := json.Unmarshal([]byte(cachedData), dest); unmarshalErr == nil {
			metrics.RecordCacheLookup(name, "hit")
			c.logger.Debug("Cache hit", zap.String("key", name))
			return nil
		} else {
			metrics.RecordCacheLookup(name, "error")
			c.logger.Warn("Cache entry corrupted, falling back to database",
				zap.String("key", name),
				zap.Error(unmarshalErr))
		}
	case err == nil || err == redis.Nil:
		metrics.RecordCacheLookup(name, "miss")
		c.logger.Debug("Cache miss", zap.String("key", name))
	default:
		metrics.RecordCacheLookup(name, "error")
		c.logger.Warn("Cache error, falling back to database",
			zap.String("key", name),
			zap.Error(err))
	}

	gen := c.generation.Load()
	value, err := load(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	go c.storeAsync(cacheKey, name, data, ttl, gen)
	return nil
}

// InvalidateAdmin drops every cached admin view. Called after each write so the
// next dashboard read sees it. Errors are logged only.
func (c *CacheService) InvalidateAdmin(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	c.generation.Add(1)
	if err := c.redis.InvalidatePattern(ctx, c.redis.KeyBuilder.KeyAdminPattern()); err != nil {
		c.logger.Error("Failed to invalidate admin caches", zap.Error(err))
		return
	}
	c.logger.Debug("Admin caches invalidated")
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}

func (c *CacheService) loadInto(ctx context.Context, dest interface{}, load func(ctx context.Context) (interface{}, error)) error {
	value, err := load(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return json.Unmarshal(data, dest)
}

func (c *CacheService) storeAsync(cacheKey, name string, data []byte, ttl time.Duration, gen uint64) {
	if c.generation.Load() != gen {
		c.logger.Debug("Skipping stale cache store", zap.String("key", name))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.redis.Set(ctx, cacheKey, string(data), ttl); err != nil {
		c.logger.Error("Failed to cache value",
			zap.String("key", name),
			zap.Error(err))
		return
	}

	// an invalidation that bumped the generation before our Set may have
	// deleted keys before it landed
	if c.generation.Load() != gen {
		if err := c.redis.Delete(ctx, cacheKey); err != nil {
			c.logger.Error("Failed to drop stale cache value",
				zap.String("key", name),
				zap.Error(err))
		}
		return
	}
	c.logger.Debug("Value cached", zap.String("key", name))
}
