package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"annonsplats/internal/domain"
	"annonsplats/internal/pkg/validate"
)

type ErrorResponse struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	TraceID string                `json:"trace_id,omitempty"`
	Fields  []validate.FieldError `json:"fields,omitempty"`
}

var domainErrors = []struct {
	err  error
	code int
}{
	{domain.ErrNotFound, fiber.StatusNotFound},
	{domain.ErrForbidden, fiber.StatusForbidden},
	{domain.ErrMessagingLocked, fiber.StatusForbidden},
	{domain.ErrInvalidTransition, fiber.StatusConflict},
	{domain.ErrAlreadyApplied, fiber.StatusConflict},
	{domain.ErrUsernameTaken, fiber.StatusConflict},
	{domain.ErrOwnAd, fiber.StatusBadRequest},
	{domain.ErrInvalidLocation, fiber.StatusBadRequest},
	{domain.ErrEmptyMessage, fiber.StatusBadRequest},
}

// NewErrorHandler renders every failed request as an ErrorResponse and logs
// it once.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fields []validate.FieldError

		var fe *fiber.Error
		var ve *validate.Error
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		case errors.As(err, &ve):
			code = fiber.StatusUnprocessableEntity
			message = "Validation failed"
			fields = ve.Fields
		default:
			for _, de := range domainErrors {
				if errors.Is(err, de.err) {
					code = de.code
					message = de.err.Error()
					break
				}
			}
		}

		traceID := uuid.New().String()[:8]

		logFields := []zap.Field{
			zap.String("trace_id", traceID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", logFields...)
		} else {
			logger.Debug("request rejected", logFields...)
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode(code),
			Message: message,
			TraceID: traceID,
			Fields:  fields,
		})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusUpgradeRequired:
		return "UPGRADE_REQUIRED"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	}
	return "INTERNAL_ERROR"
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
