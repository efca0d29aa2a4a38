package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/complainthub/complaint-service/internal/persistence"
)

// AnalyticsCache caches the analytics summary between writes. Cache failures
// are treated as misses, never surfaced to callers.
type AnalyticsCache interface {
	Get(ctx context.Context) (*AnalyticsSummary, bool)
	Set(ctx context.Context, summary *AnalyticsSummary)
	Invalidate(ctx context.Context)
}

const analyticsCacheKey = "complaints:analytics"

// RedisAnalyticsCache stores the summary as JSON in Redis with a short TTL.
type RedisAnalyticsCache struct {
	redis  *persistence.Redis
	logger *zap.Logger
	ttl    time.Duration
}

// NewRedisAnalyticsCache constructs the cache.
func NewRedisAnalyticsCache(redis *persistence.Redis, logger *zap.Logger, ttl time.Duration) *RedisAnalyticsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisAnalyticsCache{redis: redis, logger: logger, ttl: ttl}
}

func (c *RedisAnalyticsCache) Get(ctx context.Context) (*AnalyticsSummary, bool) {
	if c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, analyticsCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var summary AnalyticsSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		c.logger.Warn("corrupt analytics cache entry", zap.Error(err))
		return nil, false
	}
	return &summary, true
}

func (c *RedisAnalyticsCache) Set(ctx context.Context, summary *AnalyticsSummary) {
	if c.redis == nil || c.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, analyticsCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("analytics cache set failed", zap.Error(err))
	}
}

func (c *RedisAnalyticsCache) Invalidate(ctx context.Context) {
	if c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, analyticsCacheKey).Err(); err != nil {
		c.logger.Debug("analytics cache invalidation failed", zap.Error(err))
	}
}
