package handler

import (
	"github.com/gofiber/fiber/v2"

	"annonsplats/internal/domain"
	"annonsplats/internal/middleware"
	"annonsplats/internal/pkg/validate"
	"annonsplats/internal/service/ad"
)

type AdHandler struct {
	adService ad.Service
}

func NewAdHandler(adService ad.Service) *AdHandler {
	return &AdHandler{adService: adService}
}

const signInToSeeMore = "Sign in to search and see more ads"

// Search serves the catalog. Anonymous visitors only get the newest ads
// preview; narrowing the list or paging requires a signed-in user.
func (h *AdHandler) Search(c *fiber.Ctx) error {
	var params domain.AdSearchParams
	if err := c.QueryParser(&params); err != nil {
		return middleware.BadRequest("Invalid query parameters")
	}
	if err := validate.Struct(&params); err != nil {
		return err
	}

	if !middleware.IsAuthenticated(c) {
		if params.IsFiltered() || c.QueryInt("page", 1) > 1 {
			return middleware.Unauthorized(signInToSeeMore)
		}
		preview, err := h.adService.Preview(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(preview)
	}

	result, err := h.adService.Search(c.Context(), params, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AdHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	found, err := h.adService.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(found)
}

func (h *AdHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAdInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	created, err := h.adService.Create(c.Context(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateAdInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	updated, err := h.adService.Update(c.Context(), middleware.GetCurrentUserID(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *AdHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.adService.Delete(c.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByUser lists the ads on a profile page, with the same anonymous cap
// as the catalog.
func (h *AdHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if !middleware.IsAuthenticated(c) {
		if c.QueryInt("page", 1) > 1 {
			return middleware.Unauthorized(signInToSeeMore)
		}
		preview, err := h.adService.PreviewByUser(c.Context(), userID)
		if err != nil {
			return err
		}
		return c.JSON(preview)
	}

	result, err := h.adService.ListByUser(c.Context(), userID, getPaginationParams(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *AdHandler) ListRegions(c *fiber.Ctx) error {
	regions, err := h.adService.ListRegions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": regions})
}

func (h *AdHandler) ListMunicipalities(c *fiber.Ctx) error {
	region := c.Query("region")
	if region == "" {
		return middleware.BadRequest("region is required")
	}

	municipalities, err := h.adService.ListMunicipalities(c.Context(), region)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": municipalities})
}
