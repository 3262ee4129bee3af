package middleware

import (
	"AlumniHub/internal/pkg/consts"
	"AlumniHub/internal/pkg/redis"
	"AlumniHub/internal/pkg/response"
	"AlumniHub/internal/service"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyMiddleware 按客户端提交的幂等键拦截重复请求
// 不带键的请求直接放行
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		fresh, err := redis.SetNX(c.Request.Context(), consts.IdempotencyKey+key, 1, idempotencyTTL)
		if err != nil {
			response.Fail(c, response.InternalServerError, "未知错误")
			c.Abort()
			return
		}
		if !fresh {
			response.Error(c, service.ErrActionDuplicate)
			c.Abort()
			return
		}

		c.Next()

		// 处理失败要释放幂等键，客户端才能拿同一个键重试
		if code := c.GetInt(response.CtxBusinessCode); code != 0 && code != response.Ok {
			if delErr := redis.DeleteKey(c.Request.Context(), consts.IdempotencyKey+key); delErr != nil {
				log.WarnContext(c.Request.Context(), "release idempotency key error", "key", key, "err", delErr)
			}
		}
	}
}
