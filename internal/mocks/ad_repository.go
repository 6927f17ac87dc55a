package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"annonsplats/internal/domain"
)

type AdRepository struct {
	mock.Mock
}

func (m *AdRepository) Create(ctx context.Context, ad *domain.Ad) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}

func (m *AdRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ad, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ad), args.Error(1)
}

func (m *AdRepository) Update(ctx context.Context, ad *domain.Ad) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}

func (m *AdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AdRepository) Search(ctx context.Context, params domain.AdSearchParams, limit, offset int) ([]domain.Ad, int64, error) {
	args := m.Called(ctx, params, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Ad), args.Get(1).(int64), args.Error(2)
}

func (m *AdRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Ad, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Ad), args.Get(1).(int64), args.Error(2)
}
