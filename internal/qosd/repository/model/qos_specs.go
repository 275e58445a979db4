package model

import (
	"time"

	"gorm.io/gorm"
)

// QoSSpecs QoS 规格表
type QoSSpecs struct {
	ID        string         `gorm:"primaryKey;type:text;column:id" json:"id"`
	Name      string         `gorm:"type:text;not null;column:name" json:"name"` // 唯一索引见 createIndexes
	Consumer  string         `gorm:"type:text;not null;default:back-end;column:consumer" json:"consumer"`
	Keys      []QoSSpecsKey  `gorm:"foreignKey:QoSSpecsID;references:ID" json:"keys,omitempty"`
	CreatedAt time.Time      `gorm:"type:datetime;not null;index:idx_qos_specs_created_at;column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"type:datetime;index:idx_qos_specs_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (QoSSpecs) TableName() string {
	return "qos_specs"
}

// QoSSpecsKey QoS 规格键值表，删除时直接物理删除
type QoSSpecsKey struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	QoSSpecsID string    `gorm:"type:text;not null;index:idx_qos_specs_keys_specs_id;column:qos_specs_id" json:"qos_specs_id"`
	SpecKey    string    `gorm:"type:text;not null;column:spec_key" json:"key"`
	SpecValue  string    `gorm:"type:text;not null;column:spec_value" json:"value"`
	CreatedAt  time.Time `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
}

// TableName 指定表名
func (QoSSpecsKey) TableName() string {
	return "qos_specs_keys"
}

// SpecsMap 把键值行转成 map
func (q *QoSSpecs) SpecsMap() map[string]string {
	out := make(map[string]string, len(q.Keys))
	for _, k := range q.Keys {
		out[k.SpecKey] = k.SpecValue
	}
	return out
}
