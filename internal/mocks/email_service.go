package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"annonsplats/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendEmailVerification(ctx context.Context, toEmail, name, verificationToken string) error {
	args := m.Called(ctx, toEmail, name, verificationToken)
	return args.Error(0)
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, name, resetToken string) error {
	args := m.Called(ctx, toEmail, name, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendApplicationReceivedEmail(ctx context.Context, toEmail, posterName, applicantName, adTitle string) error {
	args := m.Called(ctx, toEmail, posterName, applicantName, adTitle)
	return args.Error(0)
}

func (m *EmailService) SendApplicationStatusEmail(ctx context.Context, toEmail, applicantName, adTitle string, status domain.ApplicationStatus) error {
	args := m.Called(ctx, toEmail, applicantName, adTitle, status)
	return args.Error(0)
}
