package api

import (
	"errors"

	"github.com/jimyag/qosd/pkg/apierror"
)

// translateError 把服务返回的错误转换为带 HTTP 状态码的 apierror
// 已分类的错误状态码只由 Kind 决定，未知错误按 500 处理
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) || apiErr == nil {
		return apierror.WrapError(apierror.ErrInternalError, err.Error(), err)
	}
	if apiErr.Kind == apierror.KindUnknown {
		return apiErr
	}
	return apiErr.WithKind(apiErr.Kind)
}

// translateDeleteError 删除时 force 仍然失败的 InUse 视为服务端失败
func translateDeleteError(err error, force bool) error {
	if force && apierror.KindOf(err) == apierror.KindInUse {
		var apiErr *apierror.Error
		errors.As(err, &apiErr)
		return apiErr.WithKind(apierror.KindOperationFailed)
	}
	return translateError(err)
}
