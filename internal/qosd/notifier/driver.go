package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jimyag/qosd/internal/qosd/config"
	"github.com/jimyag/qosd/internal/qosd/repository"
	"github.com/jimyag/qosd/internal/qosd/repository/model"
	"github.com/rs/zerolog"
)

// NewDriver 按配置的 driver 名称创建 Driver
func NewDriver(name string, repo *repository.Repository) (Driver, error) {
	switch name {
	case config.NotificationLog:
		return LogDriver{}, nil
	case config.NotificationOutbox:
		if repo == nil {
			return nil, fmt.Errorf("notification driver %q needs a database", name)
		}
		return NewOutboxDriver(repository.NewNotificationRepository(repo.DB())), nil
	case config.NotificationNoop:
		return NoopDriver{}, nil
	default:
		return nil, fmt.Errorf("unsupported notification driver %q", name)
	}
}

// LogDriver 把事件写入请求上下文中的 logger
type LogDriver struct{}

// Send 实现 Driver 接口
func (LogDriver) Send(ctx context.Context, event Event) error {
	logger := zerolog.Ctx(ctx)
	entry := logger.Info()
	if event.Priority == PriorityError {
		entry = logger.Error()
	}
	entry.
		Str("messageID", event.MessageID).
		Str("publisherID", event.PublisherID).
		Str("eventType", event.EventType).
		Interface("payload", event.Payload).
		Msg("notification")
	return nil
}

// NoopDriver 丢弃所有事件
type NoopDriver struct{}

// Send 实现 Driver 接口
func (NoopDriver) Send(context.Context, Event) error {
	return nil
}

// OutboxDriver 把事件写入 notifications 表，由外部进程转发
type OutboxDriver struct {
	repo repository.NotificationRepository
}

// NewOutboxDriver 创建 OutboxDriver
func NewOutboxDriver(repo repository.NotificationRepository) *OutboxDriver {
	return &OutboxDriver{repo: repo}
}

// Send 实现 Driver 接口
func (d *OutboxDriver) Send(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return d.repo.Create(ctx, &model.Notification{
		MessageID:   event.MessageID,
		PublisherID: event.PublisherID,
		EventType:   event.EventType,
		Priority:    string(event.Priority),
		Payload:     string(payload),
		CreatedAt:   event.Timestamp,
	})
}

// Recorder 在内存中记录事件，同时也是一个 Source
// 用于测试，可以并发使用
type Recorder struct {
	mu         sync.Mutex
	events     []Event
	publishers []string
	err        error
}

// NewRecorder 创建 Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith 让之后的 Send 都返回 err，事件仍然会被记录
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Notifier 实现 Source 接口，记录被请求的发布者名称
func (r *Recorder) Notifier(publisherID string) Notifier {
	r.mu.Lock()
	r.publishers = append(r.publishers, publisherID)
	r.mu.Unlock()
	return &publisher{publisherID: publisherID, driver: r}
}

// Send 实现 Driver 接口
func (r *Recorder) Send(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

// Events 返回已记录事件的副本
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Publishers 返回 Notifier 被请求时传入的发布者名称
func (r *Recorder) Publishers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.publishers...)
}
