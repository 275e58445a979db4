package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jimyag/qosd/internal/qosd/entity"
	"github.com/jimyag/qosd/internal/qosd/repository"
	"github.com/jimyag/qosd/pkg/apierror"
	"github.com/jimyag/qosd/pkg/idgen"
	"github.com/jimyag/qosd/pkg/pagination"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// QoSSpecsService QoS 规格服务
type QoSSpecsService struct {
	repo      *repository.Repository
	specsRepo repository.QoSSpecsRepository
	typeRepo  repository.VolumeTypeRepository
	idGen     *idgen.Generator
}

// NewQoSSpecsService 创建 QoS 规格服务
func NewQoSSpecsService(repo *repository.Repository) *QoSSpecsService {
	return &QoSSpecsService{
		repo:      repo,
		specsRepo: repository.NewQoSSpecsRepository(repo.DB()),
		typeRepo:  repository.NewVolumeTypeRepository(repo.DB()),
		idGen:     idgen.DefaultGenerator(),
	}
}

// List 列出 QoS 规格，按 req 过滤、排序并分页
func (s *QoSSpecsService) List(ctx context.Context, req *pagination.Request) (pagination.Page[*entity.QoSSpec], error) {
	rows, err := s.specsRepo.List(ctx)
	if err != nil {
		return pagination.Page[*entity.QoSSpec]{}, apierror.WrapError(apierror.ErrInternalError, "Failed to list qos specs", err)
	}

	specs := make([]*entity.QoSSpec, 0, len(rows))
	for _, row := range rows {
		spec, err := qosSpecsModelToEntity(row)
		if err != nil {
			return pagination.Page[*entity.QoSSpec]{}, apierror.WrapError(apierror.ErrInternalError, "Failed to convert qos specs", err)
		}
		specs = append(specs, spec)
	}

	return pagination.Apply(specs, req)
}

// Get 根据 ID 获取 QoS 规格
func (s *QoSSpecsService) Get(ctx context.Context, id string) (*entity.QoSSpec, error) {
	row, err := s.specsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", id))
	}
	return qosSpecsModelToEntity(row)
}

// GetByName 根据名称获取 QoS 规格
func (s *QoSSpecsService) GetByName(ctx context.Context, name string) (*entity.QoSSpec, error) {
	row, err := s.specsRepo.GetByName(ctx, name)
	if err != nil {
		return nil, notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", name))
	}
	return qosSpecsModelToEntity(row)
}

// Create 创建 QoS 规格
// specs 中的 consumer 键决定 consumer，默认 back-end，其余键作为参数保存
func (s *QoSSpecsService) Create(ctx context.Context, name string, specs entity.Specs) (*entity.QoSSpec, error) {
	logger := zerolog.Ctx(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierror.WrapError(apierror.ErrInvalidQoSSpecs, "QoS specs name can not be empty.", nil)
	}

	consumer := entity.ConsumerBackEnd
	params := entity.Specs{}
	for k, v := range specs {
		if k == entity.ConsumerKey {
			consumer = v
			continue
		}
		params[k] = v
	}
	if !entity.ValidConsumer(consumer) {
		return nil, apierror.WrapError(apierror.ErrInvalidQoSSpecs,
			fmt.Sprintf("Invalid consumer %q, must be one of front-end, back-end, both.", consumer), nil)
	}

	if _, err := s.specsRepo.GetByName(ctx, name); err == nil {
		return nil, apierror.WrapError(apierror.ErrQoSSpecsExists, fmt.Sprintf("QoS Specs %s already exists.", name), nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.WrapError(apierror.ErrQoSSpecsCreateFailed, fmt.Sprintf("Failed to create qos_specs: %s.", name), err)
	}

	id, err := s.idGen.GenerateQoSSpecsID()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrQoSSpecsCreateFailed, "Failed to generate qos specs ID", err)
	}

	row, err := qosSpecsEntityToModel(&entity.QoSSpec{
		ID:       id,
		Name:     name,
		Consumer: consumer,
		Specs:    params,
	})
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrQoSSpecsCreateFailed, "Failed to convert qos specs", err)
	}

	if err := s.specsRepo.Create(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return nil, apierror.WrapError(apierror.ErrQoSSpecsExists, fmt.Sprintf("QoS Specs %s already exists.", name), err)
		}
		return nil, apierror.WrapError(apierror.ErrQoSSpecsCreateFailed, fmt.Sprintf("Failed to create qos_specs: %s.", name), err)
	}

	logger.Info().
		Str("qosSpecsID", id).
		Str("name", name).
		Msg("QoS specs created")

	return s.Get(ctx, id)
}

// Update 更新 QoS 规格参数，返回本次更新的键值
func (s *QoSSpecsService) Update(ctx context.Context, id string, specs entity.Specs) (entity.Specs, error) {
	if _, err := s.specsRepo.GetByID(ctx, id); err != nil {
		return nil, notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", id))
	}

	params := entity.Specs{}
	consumer, hasConsumer := specs[entity.ConsumerKey]
	for k, v := range specs {
		if k != entity.ConsumerKey {
			params[k] = v
		}
	}
	if hasConsumer && !entity.ValidConsumer(consumer) {
		return nil, apierror.WrapError(apierror.ErrInvalidQoSSpecs,
			fmt.Sprintf("Invalid consumer %q, must be one of front-end, back-end, both.", consumer), nil)
	}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		specsRepo := repository.NewQoSSpecsRepository(tx)
		if hasConsumer {
			if err := specsRepo.UpdateConsumer(ctx, id, consumer); err != nil {
				return err
			}
		}
		return specsRepo.UpsertKeys(ctx, id, params)
	})
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrQoSSpecsUpdateFailed, fmt.Sprintf("Failed to update qos_specs: %s.", id), err)
	}

	return specs, nil
}

// Delete 删除 QoS 规格
// 仍有关联时，force 为 false 返回 InUse，为 true 先解除所有关联再删除
func (s *QoSSpecsService) Delete(ctx context.Context, id string, force bool) error {
	logger := zerolog.Ctx(ctx)

	if _, err := s.specsRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", id))
	}

	bound, err := s.typeRepo.ListByQoSSpecsID(ctx, id)
	if err != nil {
		return apierror.WrapError(apierror.ErrQoSSpecsDeleteFailed, fmt.Sprintf("Failed to delete qos_specs: %s.", id), err)
	}
	if len(bound) > 0 && !force {
		return apierror.WrapError(apierror.ErrQoSSpecsInUse,
			fmt.Sprintf("QoS Specs %s is still associated with entities.", id), nil)
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if len(bound) > 0 {
			if err := repository.NewVolumeTypeRepository(tx).ClearQoSSpecsID(ctx, id); err != nil {
				return err
			}
		}
		return repository.NewQoSSpecsRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		return apierror.WrapError(apierror.ErrQoSSpecsDeleteFailed, fmt.Sprintf("Failed to delete qos_specs: %s.", id), err)
	}

	logger.Info().
		Str("qosSpecsID", id).
		Bool("force", force).
		Int("disassociated", len(bound)).
		Msg("QoS specs deleted")
	return nil
}

// DeleteKeys 删除 QoS 规格中的指定键，任何一个键不存在时不做修改
func (s *QoSSpecsService) DeleteKeys(ctx context.Context, id string, keys []string) error {
	row, err := s.specsRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", id))
	}

	current := row.SpecsMap()
	for _, key := range keys {
		if _, ok := current[key]; !ok {
			return apierror.WrapError(apierror.ErrQoSSpecsKeyNotFound,
				fmt.Sprintf("QoS spec %s has no spec with key %s.", id, key), nil)
		}
	}

	if err := s.specsRepo.DeleteKeys(ctx, id, keys); err != nil {
		return apierror.WrapError(apierror.ErrQoSSpecsUpdateFailed, fmt.Sprintf("Failed to delete keys of qos_specs: %s.", id), err)
	}
	return nil
}

// GetAssociations 列出与 QoS 规格关联的卷类型
func (s *QoSSpecsService) GetAssociations(ctx context.Context, id string) ([]entity.Association, error) {
	if _, err := s.specsRepo.GetByID(ctx, id); err != nil {
		return nil, notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", id))
	}

	bound, err := s.typeRepo.ListByQoSSpecsID(ctx, id)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, fmt.Sprintf("Failed to get associations of qos specs %s.", id), err)
	}

	associations := make([]entity.Association, 0, len(bound))
	for _, vt := range bound {
		associations = append(associations, volumeTypeToAssociation(vt))
	}
	return associations, nil
}

// Associate 关联卷类型
// 卷类型已关联其他 QoS 规格时返回 InvalidVolumeType，重复关联同一个规格视为成功
func (s *QoSSpecsService) Associate(ctx context.Context, id, typeID string) error {
	logger := zerolog.Ctx(ctx)

	if _, err := s.specsRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", id))
	}
	vt, err := s.typeRepo.GetByID(ctx, typeID)
	if err != nil {
		return notFoundOr(err, apierror.ErrVolumeTypeNotFound, fmt.Sprintf("Volume type %s could not be found.", typeID))
	}

	switch vt.QoSSpecsID {
	case id:
		return nil
	case "":
	default:
		return apierror.WrapError(apierror.ErrInvalidVolumeType,
			fmt.Sprintf("Type %s is already associated with another qos specs: %s", typeID, vt.QoSSpecsID), nil)
	}

	if err := s.typeRepo.SetQoSSpecsID(ctx, typeID, id); err != nil {
		return apierror.WrapError(apierror.ErrQoSSpecsAssociateFailed,
			fmt.Sprintf("Failed to associate qos_specs: %s with type: %s.", id, typeID), err)
	}

	logger.Info().
		Str("qosSpecsID", id).
		Str("volumeTypeID", typeID).
		Msg("QoS specs associated")
	return nil
}

// Disassociate 解除卷类型关联，未关联时视为成功
func (s *QoSSpecsService) Disassociate(ctx context.Context, id, typeID string) error {
	if _, err := s.specsRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", id))
	}
	vt, err := s.typeRepo.GetByID(ctx, typeID)
	if err != nil {
		return notFoundOr(err, apierror.ErrVolumeTypeNotFound, fmt.Sprintf("Volume type %s could not be found.", typeID))
	}
	if vt.QoSSpecsID != id {
		return nil
	}

	if err := s.typeRepo.SetQoSSpecsID(ctx, typeID, ""); err != nil {
		return apierror.WrapError(apierror.ErrQoSSpecsDisassociateFailed,
			fmt.Sprintf("Failed to disassociate qos_specs: %s with type: %s.", id, typeID), err)
	}
	return nil
}

// DisassociateAll 解除所有卷类型关联
func (s *QoSSpecsService) DisassociateAll(ctx context.Context, id string) error {
	if _, err := s.specsRepo.GetByID(ctx, id); err != nil {
		return notFoundOr(err, apierror.ErrQoSSpecsNotFound, fmt.Sprintf("QoS spec %s could not be found.", id))
	}

	if err := s.typeRepo.ClearQoSSpecsID(ctx, id); err != nil {
		return apierror.WrapError(apierror.ErrQoSSpecsDisassociateFailed,
			fmt.Sprintf("Failed to disassociate qos_specs: %s.", id), err)
	}
	return nil
}

// notFoundOr 记录不存在时返回 notFound，其他数据库错误返回内部错误
func notFoundOr(err error, notFound *apierror.Error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.WrapError(notFound, message, err)
	}
	return apierror.WrapError(apierror.ErrInternalError, message, err)
}

// isUniqueViolation 判断是否违反唯一约束
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
