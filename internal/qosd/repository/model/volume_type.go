package model

import (
	"time"

	"gorm.io/gorm"
)

// VolumeType 卷类型表
type VolumeType struct {
	ID          string         `gorm:"primaryKey;type:text;column:id" json:"id"`
	Name        string         `gorm:"type:text;not null;column:name" json:"name"`
	Description string         `gorm:"type:text;column:description" json:"description"`
	QoSSpecsID  string         `gorm:"type:text;index:idx_volume_types_qos_specs_id;column:qos_specs_id" json:"qos_specs_id"` // 为空表示未关联
	CreatedAt   time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"type:datetime;index:idx_volume_types_deleted_at;column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (VolumeType) TableName() string {
	return "volume_types"
}
