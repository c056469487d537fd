package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/otlink-il/otlink-backend/internal/database"
)

const (
	// SearchCacheKeyPrefix is the Redis key prefix for cached search pages
	SearchCacheKeyPrefix = "search:"
	// SearchCacheTTL keeps cached pages short-lived so profile edits show up quickly
	SearchCacheTTL = 60 * time.Second
)

// SearchCache caches live-engine search pages in Redis, keyed by the
// canonical query. Degraded (fallback) results are never cached. All
// operations fail open: a cache error is treated as a miss.
type SearchCache struct{}

// Get retrieves a cached search page. Returns false on miss or any cache error.
func (c *SearchCache) Get(ctx context.Context, key string, dest interface{}) bool {
	val, err := database.RedisClient.Get(ctx, SearchCacheKeyPrefix+key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}
	return true
}

// Set stores a search page with the short search TTL. Errors are discarded.
func (c *SearchCache) Set(ctx context.Context, key string, value interface{}) {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return
	}
	database.RedisClient.Set(ctx, SearchCacheKeyPrefix+key, jsonData, SearchCacheTTL)
}

// Invalidate drops every cached search page. Called after profile writes.
func (c *SearchCache) Invalidate(ctx context.Context) {
	iter := database.RedisClient.Scan(ctx, 0, SearchCacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		database.RedisClient.Del(ctx, iter.Val())
	}
}
