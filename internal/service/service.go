package service

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"annonsplats/internal/config"
	"annonsplats/internal/realtime"
	"annonsplats/internal/repository"
	"annonsplats/internal/service/ad"
	"annonsplats/internal/service/application"
	"annonsplats/internal/service/auth"
	"annonsplats/internal/service/email"
	"annonsplats/internal/service/message"
	"annonsplats/internal/service/notification"
	"annonsplats/internal/service/profile"
)

type Services struct {
	Auth         auth.Service
	Profile      profile.Service
	Ad           ad.Service
	Application  application.Service
	Message      message.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(
	repos *repository.Repositories,
	redis *redis.Client,
	store profile.ObjectStore,
	broker realtime.Broker,
	cfg *config.Config,
	logger *zap.Logger,
) (*Services, error) {
	emailService, err := email.NewService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init email service: %w", err)
	}

	notificationService := notification.NewService(repos.Application, repos.Message, notification.NewTracker(), logger)
	authService := auth.NewService(repos.User, repos.Session, emailService, notificationService, cfg, logger)
	profileService := profile.NewService(repos.User, store, cfg, logger)
	adService := ad.NewService(repos.Ad, repos.Location, redis, cfg, logger)
	applicationService := application.NewService(
		repos.Application,
		repos.Ad,
		repos.User,
		notificationService,
		emailService,
		broker,
		cfg,
		logger,
	)
	messageService := message.NewService(repos.Message, repos.Application, repos.Ad, repos.User, notificationService, broker, logger)

	return &Services{
		Auth:         authService,
		Profile:      profileService,
		Ad:           adService,
		Application:  applicationService,
		Message:      messageService,
		Notification: notificationService,
		Email:        emailService,
	}, nil
}
