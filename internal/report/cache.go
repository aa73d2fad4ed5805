package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mtlprog/wealthlens/internal/metrics"
)

// Cache stores computed reports keyed by user and holdings fingerprint.
// A report stays valid until the user's holdings change.
type Cache interface {
	Get(ctx context.Context, userID, fingerprint string) (*Report, bool)
	Set(ctx context.Context, userID, fingerprint string, r *Report)
}

// RedisCache is a Cache backed by Redis. Failures are logged and treated as
// misses so the service keeps working without Redis.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache creates a Redis report cache.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(userID, fingerprint string) string {
	return "wealthlens:report:" + userID + ":" + fingerprint
}

func (c *RedisCache) Get(ctx context.Context, userID, fingerprint string) (*Report, bool) {
	data, err := c.rdb.Get(ctx, cacheKey(userID, fingerprint)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ReportCache.WithLabelValues("miss").Inc()
		} else {
			metrics.ReportCache.WithLabelValues("error").Inc()
			slog.Warn("report cache read failed", "user", userID, "error", err)
		}
		return nil, false
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		metrics.ReportCache.WithLabelValues("error").Inc()
		slog.Warn("discarding undecodable cached report", "user", userID, "error", err)
		return nil, false
	}
	metrics.ReportCache.WithLabelValues("hit").Inc()
	return &r, true
}

func (c *RedisCache) Set(ctx context.Context, userID, fingerprint string, r *Report) {
	data, err := json.Marshal(r)
	if err != nil {
		slog.Warn("report cache encode failed", "user", userID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(userID, fingerprint), data, c.ttl).Err(); err != nil {
		slog.Warn("report cache write failed", "user", userID, "error", err)
	}
}
