package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"annonsplats/internal/domain"
	"annonsplats/internal/repository"
)

type Service interface {
	// Count computes the badge from source tables without storing it.
	Count(ctx context.Context, userID uuid.UUID) (domain.Badge, error)
	// Refresh recomputes the badge, stores it and notifies subscribers.
	Refresh(ctx context.Context, userID uuid.UUID) (domain.Badge, error)
	Increment(userID uuid.UUID, n int)
	Decrement(userID uuid.UUID, n int)
	Subscribe(userID uuid.UUID) (<-chan domain.Badge, func())
	// Forget releases the stored badge once the user has no live feed.
	Forget(userID uuid.UUID)
}

type service struct {
	appRepo repository.ApplicationRepository
	msgRepo repository.MessageRepository
	tracker *Tracker
	logger  *zap.Logger
}

func NewService(
	appRepo repository.ApplicationRepository,
	msgRepo repository.MessageRepository,
	tracker *Tracker,
	logger *zap.Logger,
) Service {
	return &service{
		appRepo: appRepo,
		msgRepo: msgRepo,
		tracker: tracker,
		logger:  logger.Named("notification"),
	}
}

func (s *service) Count(ctx context.Context, userID uuid.UUID) (domain.Badge, error) {
	pending, err := s.appRepo.CountPendingForPoster(ctx, userID)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("count pending applications: %w", err)
	}

	unread, err := s.msgRepo.CountUnreadForReceiver(ctx, userID)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("count unread messages: %w", err)
	}

	return domain.Badge{
		UserID:              userID,
		Count:               pending + unread,
		PendingApplications: pending,
		UnreadMessages:      unread,
	}, nil
}

func (s *service) Refresh(ctx context.Context, userID uuid.UUID) (domain.Badge, error) {
	badge, err := s.Count(ctx, userID)
	if err != nil {
		return domain.Badge{}, err
	}
	s.tracker.Set(userID, badge.Count)
	return badge, nil
}

func (s *service) Increment(userID uuid.UUID, n int) {
	s.adjust(userID, n)
}

func (s *service) Decrement(userID uuid.UUID, n int) {
	s.adjust(userID, -n)
}

func (s *service) adjust(userID uuid.UUID, delta int) {
	if delta == 0 {
		return
	}
	if count, ok := s.tracker.Adjust(userID, delta); ok {
		s.logger.Debug("badge adjusted",
			zap.String("user_id", userID.String()),
			zap.Int("delta", delta),
			zap.Int("count", count))
	}
}

func (s *service) Subscribe(userID uuid.UUID) (<-chan domain.Badge, func()) {
	return s.tracker.Subscribe(userID)
}

func (s *service) Forget(userID uuid.UUID) {
	s.tracker.Forget(userID)
}
