package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/qosd/internal/qosd/entity"
	"github.com/jimyag/qosd/pkg/ginx"
	"github.com/rs/zerolog"
)

// VolumeTypeServiceInterface 定义卷类型服务的接口
type VolumeTypeServiceInterface interface {
	Create(ctx context.Context, name, description string) (*entity.VolumeType, error)
	List(ctx context.Context) ([]*entity.VolumeType, error)
}

type VolumeType struct {
	volumeTypeService VolumeTypeServiceInterface
}

func NewVolumeType(volumeTypeService VolumeTypeServiceInterface) *VolumeType {
	return &VolumeType{
		volumeTypeService: volumeTypeService,
	}
}

func (v *VolumeType) RegisterRoutes(router *gin.RouterGroup) {
	typeRouter := router.Group("/types")
	typeRouter.GET("", ginx.Adapt3(v.List))
	typeRouter.POST("", ginx.Adapt5(v.Create))
}

func (v *VolumeType) Create(ctx *gin.Context, req *entity.CreateVolumeTypeRequest) (*entity.VolumeTypeResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("name", req.VolumeType.Name).
		Msg("CreateVolumeType called")

	vt, err := v.volumeTypeService.Create(ctx, req.VolumeType.Name, req.VolumeType.Description)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("Failed to create volume type")
		return nil, translateError(err)
	}

	return &entity.VolumeTypeResponse{VolumeType: vt}, nil
}

func (v *VolumeType) List(ctx *gin.Context) (*entity.ListVolumeTypesResponse, error) {
	types, err := v.volumeTypeService.List(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Msg("Failed to list volume types")
		return nil, translateError(err)
	}
	if types == nil {
		types = []*entity.VolumeType{}
	}
	return &entity.ListVolumeTypesResponse{VolumeTypes: types}, nil
}
