package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"annonsplats/internal/config"
	"annonsplats/internal/domain"
	"annonsplats/internal/metrics"
	"annonsplats/internal/pkg/i18n"
	"annonsplats/internal/realtime"
	"annonsplats/internal/repository"
	"annonsplats/internal/service/email"
	"annonsplats/internal/service/notification"
)

type Service interface {
	Apply(ctx context.Context, applicantID, adID uuid.UUID, input domain.ApplyInput) (*domain.Application, error)
	Decide(ctx context.Context, posterID, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
	AcknowledgeRejection(ctx context.Context, applicantID, applicationID uuid.UUID) (*domain.Application, error)
	Get(ctx context.Context, viewerID, applicationID uuid.UUID) (*domain.Application, error)
	ListReceived(ctx context.Context, posterID uuid.UUID, filter domain.ReceivedFilter) ([]domain.ReceivedApplication, error)
	ListSent(ctx context.Context, applicantID uuid.UUID) ([]domain.SentApplication, error)
}

type service struct {
	appRepo  repository.ApplicationRepository
	adRepo   repository.AdRepository
	userRepo repository.UserRepository
	notifSvc notification.Service
	emailSvc email.Service
	broker   realtime.Broker
	cfg      *config.Config
	logger   *zap.Logger
}

func NewService(
	appRepo repository.ApplicationRepository,
	adRepo repository.AdRepository,
	userRepo repository.UserRepository,
	notifSvc notification.Service,
	emailSvc email.Service,
	broker realtime.Broker,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		appRepo:  appRepo,
		adRepo:   adRepo,
		userRepo: userRepo,
		notifSvc: notifSvc,
		emailSvc: emailSvc,
		broker:   broker,
		cfg:      cfg,
		logger:   logger.Named("application"),
	}
}

func (s *service) Apply(ctx context.Context, applicantID, adID uuid.UUID, input domain.ApplyInput) (*domain.Application, error) {
	intro := strings.TrimSpace(input.Message)
	if intro == "" {
		return nil, domain.ErrEmptyMessage
	}

	ad, err := s.adRepo.GetByID(ctx, adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, domain.ErrNotFound
	}
	if ad.UserID == applicantID {
		return nil, domain.ErrOwnAd
	}

	exists, err := s.appRepo.ExistsForApplicant(ctx, adID, applicantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyApplied
	}

	app := &domain.Application{
		ID:          uuid.New(),
		AdID:        ad.ID,
		ApplicantID: applicantID,
		PosterID:    ad.UserID,
		Status:      domain.ApplicationPending,
	}

	// The pending application already counts toward the poster's badge,
	// so the introduction is stored as read.
	msg := &domain.Message{
		ID:              uuid.New(),
		ApplicationID:   app.ID,
		SenderID:        applicantID,
		ReceiverID:      ad.UserID,
		Content:         intro,
		IsSystemMessage: true,
		ReadStatus:      true,
	}

	if err := s.appRepo.CreateWithMessage(ctx, app, msg); err != nil {
		return nil, err
	}

	metrics.ApplicationsCreated.Inc()
	metrics.MessagesSent.WithLabelValues(metrics.KindSystem).Inc()
	s.notifSvc.Increment(ad.UserID, 1)
	msg.SenderName = s.displayName(ctx, applicantID)
	s.publish(ctx, msg)

	s.logger.Info("application created",
		zap.String("application_id", app.ID.String()),
		zap.String("ad_id", ad.ID.String()))

	go s.sendReceivedEmail(ad, applicantID)

	return app, nil
}

func (s *service) Decide(ctx context.Context, posterID, applicationID uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	if status != domain.ApplicationAccepted && status != domain.ApplicationRejected {
		return nil, domain.ErrInvalidTransition
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if app.PosterID != posterID {
		return nil, domain.ErrForbidden
	}
	if !app.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, app.Status, status)
	}

	ad, err := s.adRepo.GetByID(ctx, app.AdID)
	if err != nil {
		return nil, err
	}
	title := ""
	if ad != nil {
		title = ad.Title
	}

	msg := &domain.Message{
		ID:               uuid.New(),
		ApplicationID:    app.ID,
		SenderID:         app.PosterID,
		ReceiverID:       app.ApplicantID,
		Content:          s.statusText(status, title),
		IsSystemMessage:  true,
		ForApplicantOnly: true,
		ReadStatus:       false,
	}

	previous := app.Status
	updated, err := s.appRepo.TransitionWithMessage(ctx, app.ID, previous, status, msg)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: application changed concurrently", domain.ErrInvalidTransition)
	}
	app.Status = status

	metrics.ApplicationDecisions.WithLabelValues(string(status)).Inc()
	metrics.MessagesSent.WithLabelValues(metrics.KindSystem).Inc()

	if previous == domain.ApplicationPending {
		s.notifSvc.Decrement(app.PosterID, 1)
	}
	s.notifSvc.Increment(app.ApplicantID, 1)
	msg.SenderName = s.displayName(ctx, app.PosterID)
	s.publish(ctx, msg)

	s.logger.Info("application decided",
		zap.String("application_id", app.ID.String()),
		zap.String("status", string(status)))

	go s.sendStatusEmail(app.ApplicantID, title, status)

	return app, nil
}

func (s *service) AcknowledgeRejection(ctx context.Context, applicantID, applicationID uuid.UUID) (*domain.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if app.ApplicantID != applicantID {
		return nil, domain.ErrForbidden
	}
	if !app.Status.CanTransitionTo(domain.ApplicationRejectedRead) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, app.Status, domain.ApplicationRejectedRead)
	}

	updated, marked, err := s.appRepo.AcknowledgeRejection(ctx, app.ID, applicantID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("%w: application changed concurrently", domain.ErrInvalidTransition)
	}

	app.Status = domain.ApplicationRejectedRead
	metrics.ApplicationDecisions.WithLabelValues(string(app.Status)).Inc()
	s.notifSvc.Decrement(applicantID, int(marked))
	return app, nil
}

func (s *service) Get(ctx context.Context, viewerID, applicationID uuid.UUID) (*domain.Application, error) {
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

func (s *service) ListReceived(ctx context.Context, posterID uuid.UUID, filter domain.ReceivedFilter) ([]domain.ReceivedApplication, error) {
	if filter.AdID != nil && filter.ApplicationID == nil {
		ad, err := s.adRepo.GetByID(ctx, *filter.AdID)
		if err != nil {
			return nil, err
		}
		if ad == nil {
			return nil, domain.ErrNotFound
		}
		if ad.UserID != posterID {
			return nil, domain.ErrForbidden
		}
	}
	return s.appRepo.ListReceived(ctx, posterID, filter)
}

func (s *service) ListSent(ctx context.Context, applicantID uuid.UUID) ([]domain.SentApplication, error) {
	return s.appRepo.ListSent(ctx, applicantID)
}

func (s *service) statusText(status domain.ApplicationStatus, title string) string {
	key := "APPLICATION_ACCEPTED"
	if status == domain.ApplicationRejected {
		key = "APPLICATION_REJECTED"
	}
	return i18n.Format(s.cfg.DefaultLocale, key, map[string]string{"title": title})
}

func (s *service) displayName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user", zap.String("user_id", userID.String()), zap.Error(err))
	}
	return user.DisplayName()
}

func (s *service) publish(ctx context.Context, msg *domain.Message) {
	if err := realtime.PublishMessage(ctx, s.broker, msg); err != nil {
		s.logger.Warn("failed to publish message event",
			zap.String("application_id", msg.ApplicationID.String()), zap.Error(err))
	}
}

func (s *service) sendReceivedEmail(ad *domain.Ad, applicantID uuid.UUID) {
	ctx := context.Background()

	poster, err := s.userRepo.GetByID(ctx, ad.UserID)
	if err != nil || poster == nil {
		return
	}
	applicant, err := s.userRepo.GetByID(ctx, applicantID)
	if err != nil {
		return
	}

	if err := s.emailSvc.SendApplicationReceivedEmail(ctx, poster.Email, poster.DisplayName(), applicant.DisplayName(), ad.Title); err != nil {
		s.logger.Error("failed to send application email", zap.String("ad_id", ad.ID.String()), zap.Error(err))
	}
}

func (s *service) sendStatusEmail(applicantID uuid.UUID, title string, status domain.ApplicationStatus) {
	ctx := context.Background()

	applicant, err := s.userRepo.GetByID(ctx, applicantID)
	if err != nil || applicant == nil {
		return
	}

	if err := s.emailSvc.SendApplicationStatusEmail(ctx, applicant.Email, applicant.DisplayName(), title, status); err != nil {
		s.logger.Error("failed to send status email", zap.String("user_id", applicantID.String()), zap.Error(err))
	}
}
