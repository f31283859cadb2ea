package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
}

// Enabled 窗口与上限都为正数时规则生效
func (r RateLimitRule) Enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// 计数并在窗口首次命中时设置过期，返回 {count, ttl}
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// windowCounter 固定窗口计数，返回当前计数与窗口剩余秒数
type windowCounter interface {
	Hit(ctx context.Context, key string, windowSeconds int) (int64, int64, error)
}

type redisWindowCounter struct {
	client *redis.Client
}

func (r redisWindowCounter) Hit(ctx context.Context, key string, windowSeconds int) (int64, int64, error) {
	values, err := rateLimitScript.Run(ctx, r.client, []string{key}, windowSeconds).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(values) < 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit reply: %v", values)
	}
	return values[0], values[1], nil
}

// RateLimiter 固定窗口限流器
type RateLimiter struct {
	counter windowCounter
	rule    RateLimitRule
}

// NewRateLimiter 创建基于 Redis 的限流器，client 为 nil 或规则未启用时放行全部请求
func NewRateLimiter(client *redis.Client, rule RateLimitRule) *RateLimiter {
	limiter := &RateLimiter{rule: rule}
	if client != nil {
		limiter.counter = redisWindowCounter{client: client}
	}
	return limiter
}

// Enabled 是否实际执行限流
func (l *RateLimiter) Enabled() bool {
	return l != nil && l.counter != nil && l.rule.Enabled()
}

// Allow 计数一次请求，超限时返回需要等待的秒数
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	if !l.Enabled() {
		return true, 0, nil
	}
	if l.rule.Prefix != "" {
		key = l.rule.Prefix + ":" + key
	}
	count, ttl, err := l.counter.Hit(ctx, key, l.rule.WindowSeconds)
	if err != nil {
		return false, 0, err
	}
	if count <= int64(l.rule.MaxRequests) {
		return true, 0, nil
	}
	wait := int(ttl)
	if wait < 1 {
		wait = l.rule.WindowSeconds
	}
	return false, wait, nil
}

// RateLimitMiddleware 写接口限流中间件
func RateLimitMiddleware(limiter *RateLimiter, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}

		allowed, wait, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.SW("request_id", getRequestID(c)).Errorw("rate_limit_check_failed", "key", key, "error", err)
			response.Error(c, response.CodeInternal, "Rate limiter unavailable")
			c.Abort()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(wait))
			response.Error(c, response.CodeTooManyRequests, fmt.Sprintf("Too many requests, please retry in %d seconds", wait))
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}
