package ginx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey 用于在 gin.Context 中存储值的类型安全 key
type contextKey string

const (
	// responseFormatKey 用于存储响应格式（"json" 或 "xml"）
	responseFormatKey contextKey = "ginx.responseFormat"
	// requestIDKey 用于存储请求 ID
	requestIDKey contextKey = "ginx.requestID"
)

// RequestIDHeader 请求 ID 的 HTTP header
const RequestIDHeader = "X-Request-Id"

// setResponseFormat 设置响应格式
func setResponseFormat(ctx *gin.Context, format string) {
	ctx.Set(responseFormatKey, format)
}

// getResponseFormat 获取响应格式，如果不存在则返回默认值
func getResponseFormat(ctx *gin.Context) string {
	format, exists := ctx.Get(responseFormatKey)
	if !exists {
		return "json"
	}
	if str, ok := format.(string); ok {
		return str
	}
	return "json"
}

// RequestID 中间件，为每个请求分配 ID
// 客户端传入的 X-Request-Id 会被沿用
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" {
			id = "req-" + uuid.NewString()
		}
		ctx.Set(requestIDKey, id)
		ctx.Header(RequestIDHeader, id)
		ctx.Next()
	}
}

// GetRequestID 返回当前请求的 ID，没有经过 RequestID 中间件时返回空字符串
func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(requestIDKey)
}
