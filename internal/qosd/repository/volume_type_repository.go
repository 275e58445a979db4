package repository

import (
	"context"

	"github.com/jimyag/qosd/internal/qosd/repository/model"
	"gorm.io/gorm"
)

// VolumeTypeRepository 卷类型仓库接口
type VolumeTypeRepository interface {
	Create(ctx context.Context, volumeType *model.VolumeType) error
	GetByID(ctx context.Context, id string) (*model.VolumeType, error)
	GetByName(ctx context.Context, name string) (*model.VolumeType, error)
	List(ctx context.Context) ([]*model.VolumeType, error)
	ListByQoSSpecsID(ctx context.Context, qosSpecsID string) ([]*model.VolumeType, error)
	SetQoSSpecsID(ctx context.Context, id, qosSpecsID string) error
	ClearQoSSpecsID(ctx context.Context, qosSpecsID string) error
}

type volumeTypeRepository struct {
	db *gorm.DB
}

// NewVolumeTypeRepository 创建卷类型仓库
func NewVolumeTypeRepository(db *gorm.DB) VolumeTypeRepository {
	return &volumeTypeRepository{db: db}
}

// Create 创建卷类型
func (r *volumeTypeRepository) Create(ctx context.Context, volumeType *model.VolumeType) error {
	return r.db.WithContext(ctx).Create(volumeType).Error
}

// GetByID 根据 ID 获取卷类型
func (r *volumeTypeRepository) GetByID(ctx context.Context, id string) (*model.VolumeType, error) {
	var volumeType model.VolumeType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&volumeType).Error; err != nil {
		return nil, err
	}
	return &volumeType, nil
}

// GetByName 根据名称获取卷类型
func (r *volumeTypeRepository) GetByName(ctx context.Context, name string) (*model.VolumeType, error) {
	var volumeType model.VolumeType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&volumeType).Error; err != nil {
		return nil, err
	}
	return &volumeType, nil
}

// List 列出所有卷类型
func (r *volumeTypeRepository) List(ctx context.Context) ([]*model.VolumeType, error) {
	var volumeTypes []*model.VolumeType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&volumeTypes).Error; err != nil {
		return nil, err
	}
	return volumeTypes, nil
}

// ListByQoSSpecsID 列出关联了指定 QoS 规格的卷类型
func (r *volumeTypeRepository) ListByQoSSpecsID(ctx context.Context, qosSpecsID string) ([]*model.VolumeType, error) {
	var volumeTypes []*model.VolumeType
	if err := r.db.WithContext(ctx).
		Where("qos_specs_id = ?", qosSpecsID).
		Order("id ASC").
		Find(&volumeTypes).Error; err != nil {
		return nil, err
	}
	return volumeTypes, nil
}

// SetQoSSpecsID 设置卷类型关联的 QoS 规格，qosSpecsID 为空表示解除关联
func (r *volumeTypeRepository) SetQoSSpecsID(ctx context.Context, id, qosSpecsID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.VolumeType{}).
		Where("id = ?", id).
		Update("qos_specs_id", qosSpecsID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearQoSSpecsID 解除所有卷类型与指定 QoS 规格的关联
func (r *volumeTypeRepository) ClearQoSSpecsID(ctx context.Context, qosSpecsID string) error {
	return r.db.WithContext(ctx).
		Model(&model.VolumeType{}).
		Where("qos_specs_id = ?", qosSpecsID).
		Update("qos_specs_id", "").Error
}
