package handler

import (
	"github.com/gofiber/fiber/v2"

	"annonsplats/internal/domain"
	"annonsplats/internal/middleware"
	"annonsplats/internal/service/message"
)

type MessageHandler struct {
	msgService message.Service
}

func NewMessageHandler(msgService message.Service) *MessageHandler {
	return &MessageHandler{msgService: msgService}
}

func (h *MessageHandler) Thread(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	thread, err := h.msgService.Thread(c.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(thread)
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.SendMessageInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	msg, err := h.msgService.Send(c.Context(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	conversations, err := h.msgService.Conversations(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": conversations})
}
