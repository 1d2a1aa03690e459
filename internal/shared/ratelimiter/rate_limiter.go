// Package ratelimiter は固定ウィンドウ方式のリクエスト頻度制限を提供します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"dish_backend/internal/api"
)

// EnvKeyRecognizeRateLimit は認識エンドポイントの1分あたりの上限の環境変数名です。
const EnvKeyRecognizeRateLimit = "RECOGNIZE_RATE_LIMIT"

// RateLimiter は interval ごとに limit 回までの呼び出しを許可します。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // interval あたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Allow は上限に達していなければ呼び出しを数えて true を返します。
// 上限に達している場合は、次のウィンドウまでの残り時間とともに false を返します。
func (rl *RateLimiter) Allow() (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	if rl.count >= rl.limit {
		return false, rl.interval - now.Sub(rl.lastReset)
	}
	rl.count++
	return true, 0
}

// Middleware は上限を超えたリクエストを 429 で拒否します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := rl.Allow()
		if !ok {
			secs := int(retryAfter.Round(time.Second) / time.Second)
			if secs < 1 {
				secs = 1
			}
			slog.Warn("[RATE LIMIT] request rejected", "path", c.FullPath(), "limit", rl.limit, "retry_after", retryAfter)
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "リクエストが多すぎます。しばらくしてから再試行してください"})
			return
		}
		c.Next()
	}
}

// LoadRecognizeLimit は RECOGNIZE_RATE_LIMIT を読み込みます。未設定・不正・0以下の場合は 0（無制限）です。
func LoadRecognizeLimit() int {
	v := os.Getenv(EnvKeyRecognizeRateLimit)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid RECOGNIZE_RATE_LIMIT, rate limiting disabled", "value", v)
		return 0
	}
	return n
}
