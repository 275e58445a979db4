package repository

import (
	"context"

	"github.com/jimyag/qosd/internal/qosd/repository/model"
	"gorm.io/gorm"
)

// NotificationRepository 通知 outbox 仓库接口
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByEventType(ctx context.Context, eventType string) ([]*model.Notification, error)
	Count(ctx context.Context) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create 写入一条通知
func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByEventType 按写入顺序列出指定类型的通知，eventType 为空时列出全部
func (r *notificationRepository) ListByEventType(ctx context.Context, eventType string) ([]*model.Notification, error) {
	var notifications []*model.Notification
	query := r.db.WithContext(ctx).Order("id ASC")
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// Count 返回通知总数
func (r *notificationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Notification{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
