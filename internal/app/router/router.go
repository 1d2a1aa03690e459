package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	dishhandler "dish_backend/internal/feature/dishcatalog/transport/handler"
	recognitionhandler "dish_backend/internal/feature/recognition/transport/handler"
	"dish_backend/internal/platform/http/handler"
	jwtmw "dish_backend/internal/platform/jwt"
	"dish_backend/internal/shared/ratelimiter"
)

// NewRouter はルーティングを構成します。limiter が nil の場合、認識エンドポイントは無制限です。
func NewRouter(dish *dishhandler.DishHandler, recognition *recognitionhandler.RecognitionHandler,
	readiness gin.HandlerFunc, limiter *ratelimiter.RateLimiter) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	// DB疎通確認
	r.GET("/readyz", readiness)

	recognize := []gin.HandlerFunc{recognition.Recognize}
	if limiter != nil {
		recognize = append([]gin.HandlerFunc{limiter.Middleware()}, recognize...)
	}

	api := r.Group("/api/dish")
	{
		api.POST("/recognize", recognize...)
		api.GET("/dishes", dish.List)
		api.GET("/dish/:code", dish.Get)
	}

	// カタログの変更は catalog:write スコープのJWTが必要
	admin := api.Group("/")
	admin.Use(jwtmw.AuthRequired(jwtmw.ScopeCatalogWrite))
	{
		admin.POST("/dish", dish.Create)
		admin.PUT("/dish/:code", dish.Update)
		admin.DELETE("/dish/:code", dish.Delete)
	}

	return r
}
