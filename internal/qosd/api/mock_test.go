package api

import (
	"context"

	"github.com/jimyag/qosd/internal/qosd/entity"
	"github.com/jimyag/qosd/pkg/pagination"
	"github.com/stretchr/testify/mock"
)

// MockQoSSpecsService 是 QoSSpecsService 的 mock 实现
type MockQoSSpecsService struct {
	mock.Mock
}

func (m *MockQoSSpecsService) List(ctx context.Context, req *pagination.Request) (pagination.Page[*entity.QoSSpec], error) {
	args := m.Called(ctx, req)
	return args.Get(0).(pagination.Page[*entity.QoSSpec]), args.Error(1)
}

func (m *MockQoSSpecsService) Get(ctx context.Context, id string) (*entity.QoSSpec, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QoSSpec), args.Error(1)
}

func (m *MockQoSSpecsService) GetByName(ctx context.Context, name string) (*entity.QoSSpec, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QoSSpec), args.Error(1)
}

func (m *MockQoSSpecsService) Create(ctx context.Context, name string, specs entity.Specs) (*entity.QoSSpec, error) {
	args := m.Called(ctx, name, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QoSSpec), args.Error(1)
}

func (m *MockQoSSpecsService) Update(ctx context.Context, id string, specs entity.Specs) (entity.Specs, error) {
	args := m.Called(ctx, id, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.Specs), args.Error(1)
}

func (m *MockQoSSpecsService) Delete(ctx context.Context, id string, force bool) error {
	args := m.Called(ctx, id, force)
	return args.Error(0)
}

func (m *MockQoSSpecsService) DeleteKeys(ctx context.Context, id string, keys []string) error {
	args := m.Called(ctx, id, keys)
	return args.Error(0)
}

func (m *MockQoSSpecsService) GetAssociations(ctx context.Context, id string) ([]entity.Association, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Association), args.Error(1)
}

func (m *MockQoSSpecsService) Associate(ctx context.Context, id, typeID string) error {
	args := m.Called(ctx, id, typeID)
	return args.Error(0)
}

func (m *MockQoSSpecsService) Disassociate(ctx context.Context, id, typeID string) error {
	args := m.Called(ctx, id, typeID)
	return args.Error(0)
}

func (m *MockQoSSpecsService) DisassociateAll(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVolumeTypeService 是 VolumeTypeService 的 mock 实现
type MockVolumeTypeService struct {
	mock.Mock
}

func (m *MockVolumeTypeService) Create(ctx context.Context, name, description string) (*entity.VolumeType, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.VolumeType), args.Error(1)
}

func (m *MockVolumeTypeService) List(ctx context.Context) ([]*entity.VolumeType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.VolumeType), args.Error(1)
}
