package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"annonsplats/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Count(ctx context.Context, userID uuid.UUID) (domain.Badge, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Badge), args.Error(1)
}

func (m *NotificationService) Refresh(ctx context.Context, userID uuid.UUID) (domain.Badge, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Badge), args.Error(1)
}

func (m *NotificationService) Increment(userID uuid.UUID, n int) {
	m.Called(userID, n)
}

func (m *NotificationService) Decrement(userID uuid.UUID, n int) {
	m.Called(userID, n)
}

func (m *NotificationService) Subscribe(userID uuid.UUID) (<-chan domain.Badge, func()) {
	args := m.Called(userID)
	return args.Get(0).(<-chan domain.Badge), args.Get(1).(func())
}

func (m *NotificationService) Forget(userID uuid.UUID) {
	m.Called(userID)
}
