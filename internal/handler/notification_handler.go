package handler

import (
	"github.com/gofiber/fiber/v2"

	"annonsplats/internal/middleware"
	"annonsplats/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// GetCount recomputes the caller's badge from source and returns it.
func (h *NotificationHandler) GetCount(c *fiber.Ctx) error {
	badge, err := h.notifService.Refresh(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(badge)
}
