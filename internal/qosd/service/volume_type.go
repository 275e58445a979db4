package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jimyag/qosd/internal/qosd/entity"
	"github.com/jimyag/qosd/internal/qosd/repository"
	"github.com/jimyag/qosd/internal/qosd/repository/model"
	"github.com/jimyag/qosd/pkg/apierror"
	"github.com/jimyag/qosd/pkg/idgen"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// VolumeTypeService 卷类型服务
type VolumeTypeService struct {
	typeRepo repository.VolumeTypeRepository
	idGen    *idgen.Generator
}

// NewVolumeTypeService 创建卷类型服务
func NewVolumeTypeService(repo *repository.Repository) *VolumeTypeService {
	return &VolumeTypeService{
		typeRepo: repository.NewVolumeTypeRepository(repo.DB()),
		idGen:    idgen.DefaultGenerator(),
	}
}

// Create 创建卷类型
func (s *VolumeTypeService) Create(ctx context.Context, name, description string) (*entity.VolumeType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierror.WrapError(apierror.ErrInvalidInput, "Volume type name can not be empty.", nil)
	}

	if _, err := s.typeRepo.GetByName(ctx, name); err == nil {
		return nil, apierror.WrapError(apierror.ErrVolumeTypeExists, fmt.Sprintf("Volume Type %s already exists.", name), nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to get volume type", err)
	}

	id, err := s.idGen.GenerateVolumeTypeID()
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to generate volume type ID", err)
	}

	row := &model.VolumeType{ID: id, Name: name, Description: description}
	if err := s.typeRepo.Create(ctx, row); err != nil {
		if isUniqueViolation(err) {
			return nil, apierror.WrapError(apierror.ErrVolumeTypeExists, fmt.Sprintf("Volume Type %s already exists.", name), err)
		}
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to create volume type", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("volumeTypeID", id).
		Str("name", name).
		Msg("Volume type created")

	return s.Get(ctx, id)
}

// Get 根据 ID 获取卷类型
func (s *VolumeTypeService) Get(ctx context.Context, id string) (*entity.VolumeType, error) {
	row, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, apierror.ErrVolumeTypeNotFound, fmt.Sprintf("Volume type %s could not be found.", id))
	}
	return volumeTypeModelToEntity(row)
}

// List 列出所有卷类型
func (s *VolumeTypeService) List(ctx context.Context) ([]*entity.VolumeType, error) {
	rows, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to list volume types", err)
	}

	types := make([]*entity.VolumeType, 0, len(rows))
	for _, row := range rows {
		vt, err := volumeTypeModelToEntity(row)
		if err != nil {
			return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to convert volume type", err)
		}
		types = append(types, vt)
	}
	return types, nil
}

// EnsureDefault 确保名为 name 的卷类型存在
func (s *VolumeTypeService) EnsureDefault(ctx context.Context, name string) (*entity.VolumeType, error) {
	row, err := s.typeRepo.GetByName(ctx, name)
	if err == nil {
		return volumeTypeModelToEntity(row)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.WrapError(apierror.ErrInternalError, "Failed to get volume type", err)
	}
	return s.Create(ctx, name, "default volume type")
}
