package middleware

import (
	"math"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// maxTrackedClients 超过后清空重建，避免map无限增长
const maxTrackedClients = 10000

// RateLimiter 按客户端IP限流（令牌桶）
// 用于登录、注册这类容易被暴力尝试的接口
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter 创建限流器
// rps:每秒补充的令牌数 burst:桶容量
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxTrackedClients {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// Allow 某个客户端当前是否还有令牌
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiter(key).Allow()
}

// Handler gin中间件，超限返回429
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			response.Logger(c).Warn("rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", retryAfter(rl.rate))
			response.AbortWithError(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// retryAfter 补充一个令牌需要的秒数（至少1秒）
func retryAfter(r rate.Limit) string {
	if r <= 0 {
		return "60"
	}
	secs := int(math.Ceil(1 / float64(r)))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
