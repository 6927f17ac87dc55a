package message

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"annonsplats/internal/domain"
	"annonsplats/internal/metrics"
	"annonsplats/internal/realtime"
	"annonsplats/internal/repository"
	"annonsplats/internal/service/notification"
)

type Service interface {
	// Thread returns the messages visible to viewerID and marks the ones
	// addressed to them as read.
	Thread(ctx context.Context, viewerID, applicationID uuid.UUID) (*domain.Thread, error)
	Send(ctx context.Context, senderID, applicationID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	Conversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	// Authorize returns the application when viewerID participates in it.
	Authorize(ctx context.Context, viewerID, applicationID uuid.UUID) (*domain.Application, error)
}

type service struct {
	msgRepo  repository.MessageRepository
	appRepo  repository.ApplicationRepository
	adRepo   repository.AdRepository
	userRepo repository.UserRepository
	notifSvc notification.Service
	broker   realtime.Broker
	logger   *zap.Logger
}

func NewService(
	msgRepo repository.MessageRepository,
	appRepo repository.ApplicationRepository,
	adRepo repository.AdRepository,
	userRepo repository.UserRepository,
	notifSvc notification.Service,
	broker realtime.Broker,
	logger *zap.Logger,
) Service {
	return &service{
		msgRepo:  msgRepo,
		appRepo:  appRepo,
		adRepo:   adRepo,
		userRepo: userRepo,
		notifSvc: notifSvc,
		broker:   broker,
		logger:   logger.Named("message"),
	}
}

func (s *service) Authorize(ctx context.Context, viewerID, applicationID uuid.UUID) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if !app.IsParticipant(viewerID) {
		return nil, domain.ErrForbidden
	}
	return app, nil
}

func (s *service) Thread(ctx context.Context, viewerID, applicationID uuid.UUID) (*domain.Thread, error) {
	app, err := s.Authorize(ctx, viewerID, applicationID)
	if err != nil {
		return nil, err
	}

	marked, err := s.msgRepo.MarkRead(ctx, app.ID, viewerID)
	if err != nil {
		return nil, err
	}
	if marked > 0 {
		s.notifSvc.Decrement(viewerID, int(marked))
	}

	msgs, err := s.msgRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	title := ""
	ad, err := s.adRepo.GetByID(ctx, app.AdID)
	if err != nil {
		return nil, err
	}
	if ad != nil {
		title = ad.Title
	}

	return &domain.Thread{
		Application: *app,
		AdTitle:     title,
		Messages:    domain.FilterVisible(msgs, viewerID, app),
		MarkedRead:  marked,
		CanSend:     app.Status == domain.ApplicationAccepted,
	}, nil
}

func (s *service) Send(ctx context.Context, senderID, applicationID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	app, err := s.Authorize(ctx, senderID, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationAccepted {
		return nil, domain.ErrMessagingLocked
	}

	msg := &domain.Message{
		ID:            uuid.New(),
		ApplicationID: app.ID,
		SenderID:      senderID,
		ReceiverID:    app.Counterpart(senderID),
		Content:       content,
	}

	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	metrics.MessagesSent.WithLabelValues(metrics.KindUser).Inc()
	s.notifSvc.Increment(msg.ReceiverID, 1)

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		s.logger.Warn("failed to load sender", zap.String("user_id", senderID.String()), zap.Error(err))
	}
	msg.SenderName = sender.DisplayName()

	if err := realtime.PublishMessage(ctx, s.broker, msg); err != nil {
		s.logger.Warn("failed to publish message event",
			zap.String("application_id", app.ID.String()), zap.Error(err))
	}

	return msg, nil
}

func (s *service) Conversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	return s.msgRepo.ListConversations(ctx, userID)
}
