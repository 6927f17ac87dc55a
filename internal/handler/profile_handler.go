package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"annonsplats/internal/domain"
	"annonsplats/internal/middleware"
	"annonsplats/internal/service/profile"
)

type ProfileHandler struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.profileService.GetMe(c.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	var input domain.UpdateProfileInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	user, err := h.profileService.Update(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return middleware.BadRequest("Avatar file is required")
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	src, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Could not read uploaded file")
	}
	defer src.Close()

	user, err := h.profileService.UploadAvatar(c.Context(), middleware.GetCurrentUserID(c), file.Size, contentType, src)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrNotAnImage):
			return middleware.BadRequest("Avatar must be an image")
		case errors.Is(err, profile.ErrFileTooLarge):
			return middleware.NewError(fiber.StatusRequestEntityTooLarge, "Avatar must be 5 MB or smaller")
		case errors.Is(err, profile.ErrNoStorage):
			return middleware.NewError(fiber.StatusServiceUnavailable, "Avatar upload is unavailable")
		}
		return err
	}
	return c.JSON(user)
}

func (h *ProfileHandler) GetPublic(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	public, err := h.profileService.GetPublic(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(public)
}
