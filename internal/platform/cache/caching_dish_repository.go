// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dish_backend/internal/feature/dishcatalog/domain/entity"
	"dish_backend/internal/feature/dishcatalog/usecase"
)

// notFoundMarker is stored for description lookups that matched no dish.
const notFoundMarker = "-"

// CachingDishRepository decorates a DishRepository with Redis caching.
// Lookups by code and by description are cached; any write drops the entry for
// the written code and every cached description lookup.
type CachingDishRepository struct {
	inner     usecase.DishRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.DishRepository = (*CachingDishRepository)(nil)

// NewCachingDishRepository decorates a DishRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "dishes".
// A nil rdb disables caching entirely.
func NewCachingDishRepository(rdb *redis.Client, ttl time.Duration, inner usecase.DishRepository, namespace string) *CachingDishRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "dishes"
	}
	return &CachingDishRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByCode retrieves a dish by code, checking cache first.
func (c *CachingDishRepository) FindByCode(ctx context.Context, code string) (*entity.Dish, error) {
	if c.rdb == nil {
		return c.inner.FindByCode(ctx, code)
	}

	key := c.codeKey(code)
	if d, ok := c.get(ctx, key); ok && d != nil {
		return d, nil
	}

	d, err := c.inner.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, d)
	return d, nil
}

// FindByDescriptionContaining caches both hits and misses, since most labels
// produced by the classifier resolve the same way on every call.
func (c *CachingDishRepository) FindByDescriptionContaining(ctx context.Context, substr string) (*entity.Dish, error) {
	if c.rdb == nil {
		return c.inner.FindByDescriptionContaining(ctx, substr)
	}

	key := c.descKey(substr)
	if d, ok := c.get(ctx, key); ok {
		if d == nil {
			return nil, usecase.ErrDishNotFound
		}
		return d, nil
	}

	d, err := c.inner.FindByDescriptionContaining(ctx, substr)
	switch {
	case errors.Is(err, usecase.ErrDishNotFound):
		_ = c.rdb.Set(ctx, key, notFoundMarker, c.ttl).Err()
		return nil, err
	case err != nil:
		return nil, err
	}
	c.set(ctx, key, d)
	return d, nil
}

// Save writes through to the underlying repository and invalidates related cache entries.
func (c *CachingDishRepository) Save(ctx context.Context, dish *entity.Dish) (*entity.Dish, error) {
	saved, err := c.inner.Save(ctx, dish)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, saved.Code)
	return saved, nil
}

// Delete removes the dish and invalidates related cache entries.
func (c *CachingDishRepository) Delete(ctx context.Context, dish *entity.Dish) error {
	if err := c.inner.Delete(ctx, dish); err != nil {
		return err
	}
	c.invalidate(ctx, dish.Code)
	return nil
}

// ListAll is not cached.
func (c *CachingDishRepository) ListAll(ctx context.Context) ([]entity.Dish, error) {
	return c.inner.ListAll(ctx)
}

// get reports ok=true on a cache hit. A hit on a not-found marker returns a nil dish.
func (c *CachingDishRepository) get(ctx context.Context, key string) (*entity.Dish, bool) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return nil, false
	}
	if string(b) == notFoundMarker {
		return nil, true
	}
	var d entity.Dish
	if err := json.Unmarshal(b, &d); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &d, true
}

func (c *CachingDishRepository) set(ctx context.Context, key string, d *entity.Dish) {
	if b, err := json.Marshal(d); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate is best effort: a failure only leaves entries to expire by TTL.
func (c *CachingDishRepository) invalidate(ctx context.Context, code string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.codeKey(code)).Err(); err != nil {
		slog.Warn("failed to invalidate dish cache", "code", code, "error", err)
	}
	if err := c.deleteByPattern(ctx, c.descPrefix()+"*"); err != nil {
		slog.Warn("failed to invalidate description cache", "error", err)
	}
}

func (c *CachingDishRepository) codeKey(code string) string {
	return fmt.Sprintf("%s:code:%s", c.namespace, safe(code))
}

func (c *CachingDishRepository) descPrefix() string {
	return c.namespace + ":desc:"
}

// descKey lower-cases the query since the underlying lookup is case-insensitive.
func (c *CachingDishRepository) descKey(substr string) string {
	return c.descPrefix() + safe(strings.ToLower(substr))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingDishRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe encodes s so that distinct inputs never share a key and no glob or
// separator characters reach Redis.
func safe(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}
