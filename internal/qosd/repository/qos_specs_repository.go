package repository

import (
	"context"

	"github.com/jimyag/qosd/internal/qosd/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QoSSpecsRepository QoS 规格仓库接口
type QoSSpecsRepository interface {
	Create(ctx context.Context, specs *model.QoSSpecs) error
	GetByID(ctx context.Context, id string) (*model.QoSSpecs, error)
	GetByName(ctx context.Context, name string) (*model.QoSSpecs, error)
	List(ctx context.Context) ([]*model.QoSSpecs, error)
	UpdateConsumer(ctx context.Context, id, consumer string) error
	UpsertKeys(ctx context.Context, id string, kv map[string]string) error
	DeleteKeys(ctx context.Context, id string, keys []string) error
	Delete(ctx context.Context, id string) error
}

type qosSpecsRepository struct {
	db *gorm.DB
}

// NewQoSSpecsRepository 创建 QoS 规格仓库
func NewQoSSpecsRepository(db *gorm.DB) QoSSpecsRepository {
	return &qosSpecsRepository{db: db}
}

// Create 创建 QoS 规格，Keys 一并写入
func (r *qosSpecsRepository) Create(ctx context.Context, specs *model.QoSSpecs) error {
	return r.db.WithContext(ctx).Create(specs).Error
}

// GetByID 根据 ID 获取 QoS 规格
func (r *qosSpecsRepository) GetByID(ctx context.Context, id string) (*model.QoSSpecs, error) {
	var specs model.QoSSpecs
	if err := r.db.WithContext(ctx).
		Preload("Keys").
		Where("id = ?", id).
		First(&specs).Error; err != nil {
		return nil, err
	}
	return &specs, nil
}

// GetByName 根据名称获取 QoS 规格
func (r *qosSpecsRepository) GetByName(ctx context.Context, name string) (*model.QoSSpecs, error) {
	var specs model.QoSSpecs
	if err := r.db.WithContext(ctx).
		Preload("Keys").
		Where("name = ?", name).
		First(&specs).Error; err != nil {
		return nil, err
	}
	return &specs, nil
}

// List 列出所有 QoS 规格，按创建顺序返回
func (r *qosSpecsRepository) List(ctx context.Context) ([]*model.QoSSpecs, error) {
	var specs []*model.QoSSpecs
	if err := r.db.WithContext(ctx).
		Preload("Keys").
		Order("id ASC").
		Find(&specs).Error; err != nil {
		return nil, err
	}
	return specs, nil
}

// UpdateConsumer 更新 consumer
func (r *qosSpecsRepository) UpdateConsumer(ctx context.Context, id, consumer string) error {
	result := r.db.WithContext(ctx).
		Model(&model.QoSSpecs{}).
		Where("id = ?", id).
		Update("consumer", consumer)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertKeys 写入键值，已存在的 key 覆盖 value
func (r *qosSpecsRepository) UpsertKeys(ctx context.Context, id string, kv map[string]string) error {
	if len(kv) == 0 {
		return nil
	}
	rows := make([]model.QoSSpecsKey, 0, len(kv))
	for k, v := range kv {
		rows = append(rows, model.QoSSpecsKey{QoSSpecsID: id, SpecKey: k, SpecValue: v})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "qos_specs_id"}, {Name: "spec_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"spec_value", "updated_at"}),
		}).
		Create(&rows).Error
}

// DeleteKeys 删除指定的键
func (r *qosSpecsRepository) DeleteKeys(ctx context.Context, id string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("qos_specs_id = ? AND spec_key IN ?", id, keys).
		Delete(&model.QoSSpecsKey{}).Error
}

// Delete 软删除 QoS 规格并物理删除它的键值
func (r *qosSpecsRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("qos_specs_id = ?", id).Delete(&model.QoSSpecsKey{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&model.QoSSpecs{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
