package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type LocationRepository struct {
	mock.Mock
}

func (m *LocationRepository) ListRegions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *LocationRepository) ListMunicipalities(ctx context.Context, region string) ([]string, error) {
	args := m.Called(ctx, region)
	return args.Get(0).([]string), args.Error(1)
}

func (m *LocationRepository) Exists(ctx context.Context, region string, municipality *string) (bool, error) {
	args := m.Called(ctx, region, municipality)
	return args.Bool(0), args.Error(1)
}
