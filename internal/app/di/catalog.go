// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	dishadapters "dish_backend/internal/feature/dishcatalog/adapters"
	"dish_backend/internal/feature/dishcatalog/usecase"
	"dish_backend/internal/platform/cache"
)

// NewDishRepository creates a DishRepository implementation.
// If Redis is available, lookups are cached in front of the database.
// Otherwise, it returns the GORM repository directly.
func NewDishRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.DishRepository {
	repo := dishadapters.NewDishRepository(db)
	if rdb != nil {
		return cache.NewCachingDishRepository(rdb, ttl, repo, "dishes")
	}
	return repo
}
