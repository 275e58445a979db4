package ginx

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// isXMLRequest 检查请求是否为 XML 格式
func isXMLRequest(ctx *gin.Context) bool {
	contentType := ctx.GetHeader("Content-Type")
	return strings.Contains(contentType, "application/xml") ||
		strings.Contains(contentType, "text/xml")
}

// bindArgs 绑定请求参数到 args 结构体
// 优先级：XML/JSON Body（根据 Content-Type）> URI 参数 > Query 参数 > Form 参数
// Body 通过 ShouldBindBodyWith 绑定，原始内容缓存在 gin.BodyBytesKey 中，handler 可以再次读取
func bindArgs(ctx *gin.Context, args interface{}) error {
	if isXMLRequest(ctx) {
		if err := ctx.ShouldBindBodyWithXML(args); err == nil {
			_ = ctx.ShouldBindUri(args)
			_ = ctx.ShouldBindQuery(args)
			setResponseFormat(ctx, "xml")
			return nil
		}
	} else {
		if err := ctx.ShouldBindBodyWithJSON(args); err == nil {
			_ = ctx.ShouldBindUri(args)
			_ = ctx.ShouldBindQuery(args)
			setResponseFormat(ctx, "json")
			return nil
		}
	}

	if err := ctx.ShouldBindUri(args); err == nil {
		_ = ctx.ShouldBindQuery(args)
		setResponseFormat(ctx, "json")
		return nil
	}

	if err := ctx.ShouldBindQuery(args); err == nil {
		setResponseFormat(ctx, "json")
		return nil
	}

	setResponseFormat(ctx, "json")
	return ctx.ShouldBind(args)
}

// RawBody 返回请求的原始 body
// 优先使用 bindArgs 缓存的内容
func RawBody(ctx *gin.Context) ([]byte, error) {
	if cached, ok := ctx.Get(gin.BodyBytesKey); ok {
		if body, ok := cached.([]byte); ok {
			return body, nil
		}
	}
	body, err := ctx.GetRawData()
	if err != nil {
		return nil, err
	}
	ctx.Set(gin.BodyBytesKey, body)
	return body, nil
}
