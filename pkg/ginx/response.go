package ginx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/qosd/pkg/apierror"
)

// StatusResponse 自定义状态码的响应
// Body 为 nil 时只写状态码
type StatusResponse struct {
	Code int
	Body any
}

// Accepted 返回 202 且没有 body 的响应
func Accepted() *StatusResponse {
	return &StatusResponse{Code: http.StatusAccepted}
}

// isXMLResponse 检查是否应该使用 XML 格式响应
func isXMLResponse(ctx *gin.Context) bool {
	if getResponseFormat(ctx) == "xml" {
		return true
	}
	accept := ctx.GetHeader("Accept")
	return strings.Contains(accept, "application/xml") ||
		strings.Contains(accept, "text/xml")
}

// render 按请求格式写入 body
func render(ctx *gin.Context, code int, body any) {
	if isXMLResponse(ctx) {
		ctx.XML(code, body)
		return
	}
	ctx.JSON(code, body)
}

// renderResponse 渲染响应
// 根据请求的 Content-Type 或 Accept header 决定响应格式
func renderResponse(ctx *gin.Context, response any) {
	switch v := response.(type) {
	case nil:
		ctx.Status(http.StatusNoContent)
	case *StatusResponse:
		if v == nil {
			ctx.Status(http.StatusNoContent)
			return
		}
		if v.Body == nil {
			ctx.Status(v.Code)
			return
		}
		render(ctx, v.Code, v.Body)
	case string:
		ctx.String(http.StatusOK, v)
	case int, int64, uint, uint64, float64, bool:
		render(ctx, http.StatusOK, gin.H{"value": v})
	default:
		render(ctx, http.StatusOK, response)
	}
}

// renderError 渲染错误响应
// 错误链中有 *apierror.Error 时使用它的状态码并序列化为 ErrorResponse
// 否则使用默认的错误格式
func renderError(ctx *gin.Context, statusCode int, err error) {
	requestID := GetRequestID(ctx)

	var apiErr *apierror.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		if apiErr.HTTPStatus > 0 || apiErr.Kind != apierror.KindUnknown {
			statusCode = apierror.StatusOf(apiErr)
		}
		render(ctx, statusCode, apierror.NewErrorResponse(requestID, apiErr))
		return
	}

	var errorResp *apierror.ErrorResponse
	if errors.As(err, &errorResp) && errorResp != nil {
		if len(errorResp.Errors) > 0 && errorResp.Errors[0].HTTPStatus > 0 {
			statusCode = errorResp.Errors[0].HTTPStatus
		}
		if errorResp.RequestID == "" {
			errorResp.RequestID = requestID
		}
		render(ctx, statusCode, errorResp)
		return
	}

	render(ctx, statusCode, apierror.NewErrorResponse(requestID, apierror.NewErrorWithStatus("Error", err.Error(), statusCode)))
}
