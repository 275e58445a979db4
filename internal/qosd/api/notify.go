package api

import (
	"context"
	"errors"
	"maps"

	"github.com/jimyag/qosd/internal/qosd/notifier"
	"github.com/jimyag/qosd/pkg/apierror"
	"github.com/rs/zerolog"
)

// notifyOnce 执行 fn，然后无论成功失败都只发送一条通知
// 失败时 priority 为 ERROR，payload 附带 error_message
// 通知失败只记录日志，不影响返回值
func notifyOnce(ctx context.Context, n notifier.Notifier, eventType string, payload notifier.Payload, fn func() error) error {
	err := fn()

	priority := notifier.PriorityInfo
	out := maps.Clone(payload)
	if out == nil {
		out = notifier.Payload{}
	}
	if err != nil {
		priority = notifier.PriorityError
		out["error_message"] = errorMessage(err)
	}

	if nerr := n.Notify(ctx, priority, eventType, out); nerr != nil {
		zerolog.Ctx(ctx).Warn().
			Err(nerr).
			Str("eventType", eventType).
			Msg("Failed to emit notification")
	}
	return err
}

// errorMessage 返回面向用户的错误消息，不包含内部错误
func errorMessage(err error) string {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.Message
	}
	return err.Error()
}
