// Package notifier 提供资源变更通知
//
// 每个发布者通过 Source.Notifier 获取一个 Notifier，
// 事件最终交给 Driver 投递（日志、数据库 outbox 或丢弃）。
package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jimyag/qosd/internal/qosd/metrics"
	"github.com/rs/zerolog"
)

// Priority 通知优先级
type Priority string

const (
	PriorityInfo  Priority = "INFO"
	PriorityError Priority = "ERROR"
)

// Payload 通知内容
type Payload map[string]any

// Event 一条通知
type Event struct {
	MessageID   string    `json:"message_id"`
	PublisherID string    `json:"publisher_id"`
	EventType   string    `json:"event_type"`
	Priority    Priority  `json:"priority"`
	Payload     Payload   `json:"payload"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notifier 发送通知
type Notifier interface {
	Notify(ctx context.Context, priority Priority, eventType string, payload Payload) error
}

// Source 按发布者名称提供 Notifier
type Source interface {
	Notifier(publisherID string) Notifier
}

// Driver 投递事件
type Driver interface {
	Send(ctx context.Context, event Event) error
}

// Hub 使用同一个 Driver 的 Source
type Hub struct {
	driver Driver
}

// NewHub 创建 Hub
func NewHub(driver Driver) *Hub {
	return &Hub{driver: driver}
}

// Notifier 实现 Source 接口
func (h *Hub) Notifier(publisherID string) Notifier {
	return &publisher{publisherID: publisherID, driver: h.driver}
}

type publisher struct {
	publisherID string
	driver      Driver
}

// Notify 构造事件并交给 Driver
// 投递失败只记录日志和指标，错误返回给调用方自行决定是否忽略
func (p *publisher) Notify(ctx context.Context, priority Priority, eventType string, payload Payload) error {
	event := Event{
		MessageID:   uuid.NewString(),
		PublisherID: p.publisherID,
		EventType:   eventType,
		Priority:    priority,
		Payload:     payload,
		Timestamp:   time.Now().UTC(),
	}

	metrics.RecordNotification(eventType, string(priority))
	if err := p.driver.Send(ctx, event); err != nil {
		metrics.RecordNotificationFailure(eventType)
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("eventType", eventType).
			Str("messageID", event.MessageID).
			Msg("Failed to send notification")
		return err
	}
	return nil
}
