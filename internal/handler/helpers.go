package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"annonsplats/internal/domain"
	"annonsplats/internal/middleware"
	"annonsplats/internal/pkg/validate"
)

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", domain.DefaultPageSize); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + name)
	}
	return id, nil
}

// bindJSON parses the request body into out and runs its validate tags.
func bindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return validate.Struct(out)
}
