// Package service 提供业务逻辑层的服务实现
package service

import (
	"github.com/jimyag/qosd/internal/qosd/entity"
	"github.com/jimyag/qosd/internal/qosd/repository/model"
	"github.com/jinzhu/copier"
)

// qosSpecsModelToEntity 将 model.QoSSpecs 转换为 entity.QoSSpec
func qosSpecsModelToEntity(m *model.QoSSpecs) (*entity.QoSSpec, error) {
	e := &entity.QoSSpec{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}

	// 键值行展开为 map
	e.Specs = entity.Specs(m.SpecsMap())

	return e, nil
}

// qosSpecsEntityToModel 将 entity.QoSSpec 转换为 model.QoSSpecs
func qosSpecsEntityToModel(e *entity.QoSSpec) (*model.QoSSpecs, error) {
	m := &model.QoSSpecs{}
	if err := copier.Copy(m, e); err != nil {
		return nil, err
	}

	m.Keys = make([]model.QoSSpecsKey, 0, len(e.Specs))
	for k, v := range e.Specs {
		m.Keys = append(m.Keys, model.QoSSpecsKey{QoSSpecsID: e.ID, SpecKey: k, SpecValue: v})
	}

	return m, nil
}

// volumeTypeModelToEntity 将 model.VolumeType 转换为 entity.VolumeType
func volumeTypeModelToEntity(m *model.VolumeType) (*entity.VolumeType, error) {
	e := &entity.VolumeType{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}
	return e, nil
}

// volumeTypeToAssociation 将卷类型转换为关联记录
func volumeTypeToAssociation(m *model.VolumeType) entity.Association {
	return entity.Association{
		AssociationType: entity.AssociationTypeVolumeType,
		Name:            m.Name,
		ID:              m.ID,
	}
}
