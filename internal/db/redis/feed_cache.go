package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"Lumen/internal/core/posts"
)

const recentFeedKey = "feed:recent"

// DefaultFeedTTL bounds how stale the cached first page can get if an
// invalidation is ever missed.
const DefaultFeedTTL = 5 * time.Minute

// FeedCache caches the default first page of the feed in Redis.
// Cache failures are logged and treated as misses; the feed is always
// servable from Postgres.
type FeedCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewFeedCache creates a feed cache. ttl <= 0 selects DefaultFeedTTL.
func NewFeedCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *FeedCache {
	if ttl <= 0 {
		ttl = DefaultFeedTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// GetRecent returns the cached feed page, or (nil, false) on a miss.
func (c *FeedCache) GetRecent(ctx context.Context) (*posts.ListPostsResponse, bool) {
	data, err := c.rdb.Get(ctx, recentFeedKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("feed cache read failed", "error", err)
		return nil, false
	}

	var feed posts.ListPostsResponse
	if err := json.Unmarshal(data, &feed); err != nil {
		c.logger.Warn("feed cache entry corrupt, dropping", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}

	return &feed, true
}

// SetRecent stores the feed page with the configured TTL.
func (c *FeedCache) SetRecent(ctx context.Context, feed *posts.ListPostsResponse) {
	data, err := json.Marshal(feed)
	if err != nil {
		c.logger.Warn("feed cache encode failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, recentFeedKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("feed cache write failed", "error", err)
	}
}

// Invalidate drops the cached page. Called after every aggregate write.
func (c *FeedCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, recentFeedKey).Err(); err != nil {
		c.logger.Warn("feed cache invalidation failed", "error", err)
	}
}
