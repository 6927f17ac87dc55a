package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"annonsplats/internal/domain"
	"annonsplats/internal/middleware"
	"annonsplats/internal/service/application"
)

type ApplicationHandler struct {
	appService application.Service
}

func NewApplicationHandler(appService application.Service) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	adID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.ApplyInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	app, err := h.appService.Apply(c.Context(), middleware.GetCurrentUserID(c), adID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	app, err := h.appService.Get(c.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Decide(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.DecideInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	app, err := h.appService.Decide(c.Context(), middleware.GetCurrentUserID(c), id, input.Status)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) AcknowledgeRejection(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	app, err := h.appService.AcknowledgeRejection(c.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// ListReceived accepts optional ad_id or application_id query filters.
func (h *ApplicationHandler) ListReceived(c *fiber.Ctx) error {
	var filter domain.ReceivedFilter
	if raw := c.Query("ad_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid ad_id")
		}
		filter.AdID = &id
	}
	if raw := c.Query("application_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid application_id")
		}
		filter.ApplicationID = &id
	}

	apps, err := h.appService.ListReceived(c.Context(), middleware.GetCurrentUserID(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": apps})
}

func (h *ApplicationHandler) ListSent(c *fiber.Ctx) error {
	apps, err := h.appService.ListSent(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": apps})
}
