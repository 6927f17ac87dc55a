package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"annonsplats/internal/domain"
)

type AdService struct {
	mock.Mock
}

func (m *AdService) Create(ctx context.Context, userID uuid.UUID, input domain.CreateAdInput) (*domain.Ad, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}

func (m *AdService) Update(ctx context.Context, userID, adID uuid.UUID, input domain.UpdateAdInput) (*domain.Ad, error) {
	args := m.Called(ctx, userID, adID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}

func (m *AdService) Delete(ctx context.Context, userID, adID uuid.UUID) error {
	args := m.Called(ctx, userID, adID)
	return args.Error(0)
}

func (m *AdService) Get(ctx context.Context, adID uuid.UUID) (*domain.Ad, error) {
	args := m.Called(ctx, adID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}

func (m *AdService) Search(ctx context.Context, params domain.AdSearchParams, page domain.PaginationParams) (domain.PaginatedResponse[domain.Ad], error) {
	args := m.Called(ctx, params, page)
	return args.Get(0).(domain.PaginatedResponse[domain.Ad]), args.Error(1)
}

func (m *AdService) Preview(ctx context.Context) (domain.CatalogPreview, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CatalogPreview), args.Error(1)
}

func (m *AdService) ListByUser(ctx context.Context, userID uuid.UUID, page domain.PaginationParams) (domain.PaginatedResponse[domain.Ad], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(domain.PaginatedResponse[domain.Ad]), args.Error(1)
}

func (m *AdService) PreviewByUser(ctx context.Context, userID uuid.UUID) (domain.CatalogPreview, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.CatalogPreview), args.Error(1)
}

func (m *AdService) ListRegions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *AdService) ListMunicipalities(ctx context.Context, region string) ([]string, error) {
	args := m.Called(ctx, region)
	return args.Get(0).([]string), args.Error(1)
}
