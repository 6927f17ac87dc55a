package handler

import (
	"go.uber.org/zap"

	"annonsplats/internal/realtime"
	"annonsplats/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Ad           *AdHandler
	Application  *ApplicationHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Realtime     *RealtimeHandler
}

func NewHandlers(services *service.Services, broker realtime.Broker, logger *zap.Logger) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Profile:      NewProfileHandler(services.Profile),
		Ad:           NewAdHandler(services.Ad),
		Application:  NewApplicationHandler(services.Application),
		Message:      NewMessageHandler(services.Message),
		Notification: NewNotificationHandler(services.Notification),
		Realtime:     NewRealtimeHandler(services.Message, services.Notification, broker, logger),
	}
}
