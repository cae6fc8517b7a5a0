package cache

import (
	"context"
	"encoding/json"
	"time"

	"jobportal_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// ReferenceCache - кэш справочных коллекций поверх Redis.
// Справочники маленькие и почти статичные, поэтому храним коллекцию
// целиком под одним ключом в JSON. Промахи и отказы Redis не считаются
// ошибками - чтение просто уходит в базу.
type ReferenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReferenceCache(client *redis.Client, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{client: client, ttl: ttl}
}

func (c *ReferenceCache) key(kind string) string {
	return "reference:" + kind
}

// Get читает коллекцию из кэша; false - промах или отказ Redis
func (c *ReferenceCache) Get(kind string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := c.client.Get(ctx, c.key(kind)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("reference cache read failed", "kind", kind, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("reference cache decode failed", "kind", kind, "error", err)
		return false
	}
	return true
}

// Set пишет коллекцию в кэш (best effort)
func (c *ReferenceCache) Set(kind string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("reference cache encode failed", "kind", kind, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.client.Set(ctx, c.key(kind), raw, c.ttl).Err(); err != nil {
		logger.Warn("reference cache write failed", "kind", kind, "error", err)
	}
}

// Invalidate сбрасывает коллекцию после админской мутации справочника
func (c *ReferenceCache) Invalidate(kind string) {
	if c == nil || c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.client.Del(ctx, c.key(kind)).Err(); err != nil {
		logger.Warn("reference cache invalidate failed", "kind", kind, "error", err)
	}
}
