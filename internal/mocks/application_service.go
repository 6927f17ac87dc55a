package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"annonsplats/internal/domain"
)

type ApplicationService struct {
	mock.Mock
}

func (m *ApplicationService) Apply(ctx context.Context, applicantID, adID uuid.UUID, input domain.ApplyInput) (*domain.Application, error) {
	args := m.Called(ctx, applicantID, adID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationService) Decide(ctx context.Context, posterID, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	args := m.Called(ctx, posterID, applicationID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationService) AcknowledgeRejection(ctx context.Context, applicantID, applicationID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, applicantID, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationService) Get(ctx context.Context, viewerID, applicationID uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, viewerID, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *ApplicationService) ListReceived(ctx context.Context, posterID uuid.UUID, filter domain.ReceivedFilter) ([]domain.ReceivedApplication, error) {
	args := m.Called(ctx, posterID, filter)
	return args.Get(0).([]domain.ReceivedApplication), args.Error(1)
}

func (m *ApplicationService) ListSent(ctx context.Context, applicantID uuid.UUID) ([]domain.SentApplication, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.SentApplication), args.Error(1)
}
