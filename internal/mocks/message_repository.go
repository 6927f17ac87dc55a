package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"annonsplats/internal/domain"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MessageRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, applicationID, receiverID uuid.UUID) (int64, error) {
	args := m.Called(ctx, applicationID, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) CountUnreadForReceiver(ctx context.Context, receiverID uuid.UUID) (int, error) {
	args := m.Called(ctx, receiverID)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}
