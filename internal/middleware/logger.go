package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"annonsplats/internal/metrics"
)

var skipPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestLogger logs each request and records its duration. Errors from the
// chain are rendered here with errHandler so the logged status is final.
func RequestLogger(logger *zap.Logger, errHandler fiber.ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipPaths[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := errHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		metrics.HTTPRequestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(latency.Seconds())

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		if IsAuthenticated(c) {
			fields = append(fields, zap.String("user_id", GetCurrentUserID(c).String()))
		}
		logger.Info("request", fields...)

		return nil
	}
}
