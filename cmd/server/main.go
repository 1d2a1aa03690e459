package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"dish_backend/internal/app/di"
	"dish_backend/internal/app/router"
	dishhandler "dish_backend/internal/feature/dishcatalog/transport/handler"
	dishusecase "dish_backend/internal/feature/dishcatalog/usecase"
	recognitionhandler "dish_backend/internal/feature/recognition/transport/handler"
	"dish_backend/internal/platform/blobstore"
	platformdb "dish_backend/internal/platform/db"
	"dish_backend/internal/platform/http/handler"
	platformredis "dish_backend/internal/platform/redis"
	"dish_backend/internal/shared/ratelimiter"
)

func main() {
	// db
	db := platformdb.OpenDB()
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Println("[ERROR] Failed to close database:", err)
		}
	}()

	// Redis
	redisCfg := platformredis.LoadConfig()
	var rdb *redisv9.Client
	if !redisCfg.Enabled() {
		log.Println("[INFO] REDIS_HOST is not set. Running without cache.")
	} else if tmp, err := platformredis.NewRedisClient(redisCfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository（Redisが使える場合はキャッシュでラップ）
	dishRepo := di.NewDishRepository(rdb, db, redisCfg.CacheTTL)

	store, err := blobstore.NewLocalStore(blobstore.LoadConfig())
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	// Usecase
	dishUC := dishusecase.NewDishUsecase(dishRepo)
	recognitionUC, err := di.NewRecognitionUsecase(dishRepo, store, os.Getenv("FEATURE_EXTRACTOR"))
	if err != nil {
		log.Fatalf("failed to build recognition pipeline: %v", err)
	}

	if os.Getenv("SEED_CATALOG") == "true" {
		n, err := dishUC.SeedDefaults(context.Background())
		if err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
		log.Printf("[INFO] Seeded %d dishes", n)
	}

	// Handler
	dishH := dishhandler.NewDishHandler(dishUC)
	recognitionH := recognitionhandler.NewRecognitionHandler(recognitionUC)

	// 認識エンドポイントのレート制限（RECOGNIZE_RATE_LIMIT 回/分、未設定なら無制限）
	var limiter *ratelimiter.RateLimiter
	if n := ratelimiter.LoadRecognizeLimit(); n > 0 {
		limiter = ratelimiter.NewRateLimiter(n, time.Minute)
	}

	// ルータ生成
	r := router.NewRouter(dishH, recognitionH, handler.Readiness(sqlDB), limiter)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("[WARN] JWT_SECRET is not set. Catalog mutations will be rejected.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
