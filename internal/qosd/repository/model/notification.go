package model

import "time"

// Notification 通知 outbox 表
type Notification struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	MessageID   string    `gorm:"type:text;not null;uniqueIndex:idx_notifications_message_id;column:message_id" json:"message_id"`
	PublisherID string    `gorm:"type:text;not null;column:publisher_id" json:"publisher_id"`
	EventType   string    `gorm:"type:text;not null;index:idx_notifications_event_type;column:event_type" json:"event_type"`
	Priority    string    `gorm:"type:text;not null;column:priority" json:"priority"`
	Payload     string    `gorm:"type:text;not null;column:payload" json:"payload"` // JSON
	CreatedAt   time.Time `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
