package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"annonsplats/internal/domain"
)

type ApplicationRepository struct {
	mock.Mock
}

func (m *ApplicationRepository) CreateWithMessage(ctx context.Context, app *domain.Application, intro *domain.Message) error {
	args := m.Called(ctx, app, intro)
	return args.Error(0)
}

func (m *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationRepository) ExistsForApplicant(ctx context.Context, adID, applicantID uuid.UUID) (bool, error) {
	args := m.Called(ctx, adID, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *ApplicationRepository) TransitionWithMessage(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus, msg *domain.Message) (bool, error) {
	args := m.Called(ctx, id, from, to, msg)
	return args.Bool(0), args.Error(1)
}

func (m *ApplicationRepository) AcknowledgeRejection(ctx context.Context, id, applicantID uuid.UUID) (bool, int64, error) {
	args := m.Called(ctx, id, applicantID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *ApplicationRepository) CountPendingForPoster(ctx context.Context, posterID uuid.UUID) (int, error) {
	args := m.Called(ctx, posterID)
	return args.Int(0), args.Error(1)
}

func (m *ApplicationRepository) ListReceived(ctx context.Context, posterID uuid.UUID, filter domain.ReceivedFilter) ([]domain.ReceivedApplication, error) {
	args := m.Called(ctx, posterID, filter)
	return args.Get(0).([]domain.ReceivedApplication), args.Error(1)
}

func (m *ApplicationRepository) ListSent(ctx context.Context, applicantID uuid.UUID) ([]domain.SentApplication, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.SentApplication), args.Error(1)
}
