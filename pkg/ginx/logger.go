package ginx

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Logger 中间件，为每个请求创建带 request_id 的子 logger 并放入请求上下文
// handler 中通过 zerolog.Ctx(ctx) 获取
// engine 需要开启 ContextWithFallback，gin.Context 才会把 Value 查询转发给请求上下文
func Logger(base zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		logger := base.With().
			Str("request_id", GetRequestID(ctx)).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Logger()
		ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context()))

		ctx.Next()

		logger.Info().
			Int("status", ctx.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request completed")
	}
}
