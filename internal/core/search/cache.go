// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ministryfinder/internal/platform/constants"
	"github.com/taibuivan/ministryfinder/internal/platform/metrics"
)

const (
	// SuggestionTTL bounds how stale a cached suggestion list can be.
	SuggestionTTL = constants.SuggestionsTTL

	suggestionPrefix = constants.RedisPrefixSuggestions
	scanBatch        = 100
)

/*
Cache stores suggestion lists in Redis.

A nil *Cache, or one built without a client, is a valid no-op cache. Redis
errors are logged and treated as misses; they never fail a request.
*/
type Cache struct {
	client  *redis.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCache constructs a [Cache]. client may be nil to disable caching.
func NewCache(client *redis.Client, m *metrics.Metrics, logger *slog.Logger) *Cache {
	return &Cache{client: client, metrics: m, logger: logger}
}

func (cache *Cache) enabled() bool {
	return cache != nil && cache.client != nil
}

// SuggestionKey is the Redis key for the suggestions of q.
func SuggestionKey(q string) string {
	return suggestionPrefix + strings.ToLower(strings.TrimSpace(q))
}

// Suggestions returns the cached list for q, if any.
func (cache *Cache) Suggestions(ctx context.Context, q string) ([]Suggestion, bool) {
	if !cache.enabled() {
		return nil, false
	}

	raw, err := cache.client.Get(ctx, SuggestionKey(q)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.Warn("suggestion_cache_get_failed", slog.Any("error", err))
		}
		cache.metrics.CacheLookup(false)
		return nil, false
	}

	var suggestions []Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		cache.logger.Warn("suggestion_cache_corrupt", slog.String("key", SuggestionKey(q)), slog.Any("error", err))
		cache.metrics.CacheLookup(false)
		return nil, false
	}

	cache.metrics.CacheLookup(true)
	return suggestions, true
}

// StoreSuggestions caches suggestions for q with [SuggestionTTL].
func (cache *Cache) StoreSuggestions(ctx context.Context, q string, suggestions []Suggestion) {
	if !cache.enabled() {
		return
	}

	payload, err := json.Marshal(suggestions)
	if err != nil {
		cache.logger.Warn("suggestion_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := cache.client.Set(ctx, SuggestionKey(q), payload, SuggestionTTL).Err(); err != nil {
		cache.logger.Warn("suggestion_cache_set_failed", slog.Any("error", err))
	}
}

// Invalidate drops every cached suggestion list. It satisfies ministry.Invalidator.
func (cache *Cache) Invalidate(ctx context.Context) {
	if !cache.enabled() {
		return
	}

	deleted, err := cache.deletePattern(ctx, suggestionPrefix+"*")
	if err != nil {
		cache.logger.Warn("suggestion_cache_invalidate_failed", slog.Any("error", err))
		return
	}

	cache.logger.Debug("suggestion_cache_invalidated", slog.Int("keys", deleted))
}

// deletePattern removes keys matching pattern using SCAN rather than KEYS.
func (cache *Cache) deletePattern(ctx context.Context, pattern string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)

	for {
		keys, next, err := cache.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan %s: %w", pattern, err)
		}

		if len(keys) > 0 {
			if err := cache.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, fmt.Errorf("delete keys: %w", err)
			}
			deleted += len(keys)
		}

		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}
